package gpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gekko3d/cubes/viewer/rt/core"

	"github.com/cogentcore/webgpu/wgpu"
)

// CameraUniformSize is the byte size of the camera uniform: one mat4x4<f32>.
const CameraUniformSize = 64

const (
	vertexStride   = 20
	instanceStride = 28
)

// BufferManager owns the scene's vertex, index, instance and camera buffers.
type BufferManager struct {
	Device *wgpu.Device

	CameraBuf   *wgpu.Buffer
	VertexBuf   *wgpu.Buffer
	IndexBuf    *wgpu.Buffer
	InstanceBuf *wgpu.Buffer

	IndexCount    uint32
	InstanceCount uint32

	CameraBindGroup *wgpu.BindGroup
}

func NewBufferManager(device *wgpu.Device) *BufferManager {
	return &BufferManager{Device: device}
}

// ensureBuffer grows buf when data does not fit and uploads data. It reports
// whether the buffer was recreated, in which case bind groups referencing it
// must be rebuilt.
func (m *BufferManager) ensureBuffer(name string, buf **wgpu.Buffer, data []byte, usage wgpu.BufferUsage, headroom int) (bool, error) {
	neededSize := uint64(len(data) + headroom)
	if neededSize%4 != 0 {
		neededSize += 4 - (neededSize % 4)
	}

	recreated := false
	current := *buf
	if current == nil || current.GetSize() < neededSize {
		if current != nil {
			current.Release()
		}
		newBuf, err := m.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            name,
			Size:             neededSize,
			Usage:            usage | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			*buf = nil
			return false, err
		}
		*buf = newBuf
		recreated = true
	}

	if len(data) > 0 {
		m.Device.GetQueue().WriteBuffer(*buf, 0, data)
	}
	return recreated, nil
}

// UploadMesh writes the mesh's vertices and indices.
func (m *BufferManager) UploadMesh(mesh core.Mesh) error {
	if _, err := m.ensureBuffer("Vertex Buffer", &m.VertexBuf, MarshalVertices(mesh.Vertices), wgpu.BufferUsageVertex, 0); err != nil {
		return err
	}
	if _, err := m.ensureBuffer("Index Buffer", &m.IndexBuf, MarshalIndices(mesh.PaddedIndices()), wgpu.BufferUsageIndex, 0); err != nil {
		return err
	}
	m.IndexCount = uint32(len(mesh.Indices))
	return nil
}

// UploadInstances writes the per-instance records. The instance count used
// for drawing always matches what was uploaded.
func (m *BufferManager) UploadInstances(instances []core.InstanceRaw) error {
	if uint64(len(instances)) > math.MaxUint32/instanceStride {
		return fmt.Errorf("%d instances exceed the instance buffer limit", len(instances))
	}
	data := MarshalInstances(instances)
	if len(data) == 0 {
		// a zero-sized vertex buffer cannot be bound
		data = make([]byte, instanceStride)
	}
	if _, err := m.ensureBuffer("Instance Buffer", &m.InstanceBuf, data, wgpu.BufferUsageVertex, 0); err != nil {
		return err
	}
	m.InstanceCount = uint32(len(instances))
	return nil
}

// UpdateCamera writes the camera uniform, creating the buffer and its bind
// group on first use.
func (m *BufferManager) UpdateCamera(u core.CameraUniform, layout *wgpu.BindGroupLayout) error {
	recreated, err := m.ensureBuffer("Camera Buffer", &m.CameraBuf, MarshalCameraUniform(u), wgpu.BufferUsageUniform, 0)
	if err != nil {
		return err
	}
	if recreated || m.CameraBindGroup == nil {
		if m.CameraBindGroup != nil {
			m.CameraBindGroup.Release()
		}
		m.CameraBindGroup, err = m.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  "camera_bind_group",
			Layout: layout,
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, Buffer: m.CameraBuf, Size: CameraUniformSize},
			},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *BufferManager) Release() {
	if m.CameraBindGroup != nil {
		m.CameraBindGroup.Release()
		m.CameraBindGroup = nil
	}
	for _, buf := range []**wgpu.Buffer{&m.CameraBuf, &m.VertexBuf, &m.IndexBuf, &m.InstanceBuf} {
		if *buf != nil {
			(*buf).Release()
			*buf = nil
		}
	}
}

// MarshalCameraUniform lays out the column-major view-projection matrix.
func MarshalCameraUniform(u core.CameraUniform) []byte {
	return mat4ToBytes(u.ViewProj)
}

func MarshalVertices(vertices []core.Vertex) []byte {
	buf := make([]byte, len(vertices)*vertexStride)
	for i, v := range vertices {
		off := i * vertexStride
		putFloats(buf[off:], v.Position[:]...)
		putFloats(buf[off+12:], v.TexCoords[:]...)
	}
	return buf
}

// MarshalInstances writes color at offset 0 and position at offset 16 of each record.
func MarshalInstances(instances []core.InstanceRaw) []byte {
	buf := make([]byte, len(instances)*instanceStride)
	for i, inst := range instances {
		off := i * instanceStride
		putFloats(buf[off:], inst.Color[:]...)
		putFloats(buf[off+16:], inst.Position[:]...)
	}
	return buf
}

func MarshalIndices(indices []uint16) []byte {
	buf := make([]byte, len(indices)*2)
	for i, idx := range indices {
		binary.LittleEndian.PutUint16(buf[i*2:], idx)
	}
	return buf
}

func mat4ToBytes(m [16]float32) []byte {
	buf := make([]byte, 64)
	for i, v := range m {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func putFloats(buf []byte, vals ...float32) {
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
}
