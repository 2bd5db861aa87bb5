package group_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/windytan-exercise/rdsgo/internal/rds/group"
)

func TestNewGroupTypeDecodesNumberAndVersion(t *testing.T) {
	// Type code bits [4:1]=0 (group 0), bit[0]=0 -> "0A"
	gt := group.NewGroupType(0b00000)
	assert.Equal(t, "0A", gt.String())

	// Group 2, version B -> "2B"
	gt = group.NewGroupType(0b00101)
	assert.Equal(t, "2B", gt.String())

	// Group 15, version B -> "15B"
	gt = group.NewGroupType(0b11111)
	assert.Equal(t, "15B", gt.String())
}

func TestGroupTypeLessOrdersByNumberThenVersion(t *testing.T) {
	a := group.GroupType{Number: 0, Version: group.VersionA}
	b := group.GroupType{Number: 0, Version: group.VersionB}
	c := group.GroupType{Number: 1, Version: group.VersionA}

	assert.True(t, a.Less(b))
	assert.True(t, b.Less(c))
	assert.False(t, c.Less(a))
}

func TestGroupSetBlockDetectsTypeImmediatelyForVersionA(t *testing.T) {
	var g group.Group

	// Block 2 data: type code 0b00010 (group 1, version A) in bits [15:11].
	block2 := group.Block{Data: uint16(0b00010) << 11, IsReceived: true, Offset: group.OffsetB}
	g.SetBlock(group.Block2, block2)

	gt, ok := g.Type()
	assert.True(t, ok)
	assert.Equal(t, "1A", gt.String())
}

func TestGroupSetBlockDefersVersionBUntilCPrimeSeen(t *testing.T) {
	var g group.Group

	// Group 0, version B -> type code 0b00001.
	block2 := group.Block{Data: uint16(0b00001) << 11, IsReceived: true, Offset: group.OffsetB}
	g.SetBlock(group.Block2, block2)

	_, ok := g.Type()
	assert.False(t, ok, "version-B type should be deferred until a C' sighting disambiguates it")

	block3 := group.Block{Data: 0x1234, IsReceived: true, Offset: group.OffsetCPrime}
	g.SetBlock(group.Block3, block3)

	gt, ok := g.Type()
	assert.True(t, ok)
	assert.Equal(t, "0B", gt.String())
	assert.True(t, g.HasPI())
	assert.Equal(t, uint16(0x1234), g.PI())
}

func TestGroupIsEmptyAndNumErrors(t *testing.T) {
	var g group.Group
	assert.True(t, g.IsEmpty())

	g.SetBlock(group.Block1, group.Block{Data: 1, IsReceived: true})
	assert.False(t, g.IsEmpty())
	assert.Equal(t, 3, g.NumErrors())

	g.SetBlock(group.Block2, group.Block{HadErrors: true, IsReceived: true})
	assert.Equal(t, 3, g.NumErrors())
}

func TestGroupAsHexRendersMissingBlocksAsDashes(t *testing.T) {
	var g group.Group
	g.SetBlock(group.Block1, group.Block{Data: 0x1234, IsReceived: true})
	g.SetBlock(group.Block3, group.Block{Data: 0xABCD, IsReceived: true})

	assert.Equal(t, "1234 ---- ABCD ----", g.AsHex())
}

func TestBlockNumberForOffsetAndNextOffsetFor(t *testing.T) {
	assert.Equal(t, group.Block1, group.BlockNumberForOffset(group.OffsetA))
	assert.Equal(t, group.Block3, group.BlockNumberForOffset(group.OffsetCPrime))

	assert.Equal(t, group.OffsetB, group.NextOffsetFor(group.OffsetA))
	assert.Equal(t, group.OffsetD, group.NextOffsetFor(group.OffsetCPrime))
	assert.Equal(t, group.OffsetA, group.NextOffsetFor(group.OffsetD))
}
