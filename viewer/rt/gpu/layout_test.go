package gpu

import (
	"testing"
	"unsafe"

	"github.com/gekko3d/cubes/viewer/rt/core"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexBufferLayout(t *testing.T) {
	l := VertexBufferLayout()
	assert.Equal(t, uint64(unsafe.Sizeof(core.Vertex{})), l.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, l.StepMode)
	require.Len(t, l.Attributes, 2)
	assert.Equal(t, uint32(0), l.Attributes[0].ShaderLocation)
	assert.Equal(t, uint64(12), l.Attributes[1].Offset)
	assert.Equal(t, uint32(1), l.Attributes[1].ShaderLocation)
}

func TestInstanceBufferLayout(t *testing.T) {
	l := InstanceBufferLayout()
	assert.Equal(t, uint64(unsafe.Sizeof(core.InstanceRaw{})), l.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeInstance, l.StepMode)
	require.Len(t, l.Attributes, 2)

	assert.Equal(t, wgpu.VertexFormatFloat32x4, l.Attributes[0].Format)
	assert.Equal(t, uint64(0), l.Attributes[0].Offset)
	assert.Equal(t, uint32(2), l.Attributes[0].ShaderLocation)

	assert.Equal(t, wgpu.VertexFormatFloat32x3, l.Attributes[1].Format)
	assert.Equal(t, uint64(16), l.Attributes[1].Offset)
	assert.Equal(t, uint32(3), l.Attributes[1].ShaderLocation)
}

func TestTextVertexBufferLayout(t *testing.T) {
	l := TextVertexBufferLayout()
	assert.Equal(t, uint64(unsafe.Sizeof(core.TextVertex{})), l.ArrayStride)
	assert.Equal(t, uint64(16), l.Attributes[2].Offset)
}
