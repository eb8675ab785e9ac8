package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/philipparndt/gopipe/pkg/geometry"
)

func TestExtentLine(t *testing.T) {
	b := geometry.NewBoundingBox()
	b.Extend(geometry.NewVector3(0, 0, 0))
	b.Extend(geometry.NewVector3(3, 4, 12))
	assert.Equal(t, "Extent: 3.000 x 4.000 x 12.000 m (diagonal 13.000 m)", extentLine(b))

	assert.Equal(t, "Extent: 0.000 x 0.000 x 0.000 m (diagonal 0.000 m)", extentLine(geometry.NewBoundingBox()))
}
