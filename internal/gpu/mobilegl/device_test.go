package mobilegl

import (
	"bytes"
	"errors"
	"testing"

	"floorspin/internal/gpu"
)

func TestIndexBytes(t *testing.T) {
	have := indexBytes([]uint32{0, 1, 0x0102, 0xffff})
	want := []byte{0, 0, 1, 0, 2, 1, 0xff, 0xff}
	if !bytes.Equal(have, want) {
		t.Fatalf("indexBytes\nhave %v\nwant %v", have, want)
	}
}

func TestUploadMeshRejectsWideIndices(t *testing.T) {
	d := New(nil)
	d.programs[1] = &program{}
	_, err := d.UploadMesh(1, gpu.MeshData{
		Positions: make([]float32, (maxVertices+1)*3),
		Indices:   []uint32{0, 1, maxVertices},
	})
	if !errors.Is(err, gpu.ErrUpload) {
		t.Fatalf("UploadMesh(%d vertices)\nhave %v\nwant %v", maxVertices+1, err, gpu.ErrUpload)
	}
}
