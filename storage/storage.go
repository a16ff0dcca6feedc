// Package storage provides word-addressed backing arrays for FIFO
// controller models.
package storage

import (
	"log"

	"github.com/sarchlab/akita/v4/mem/mem"
	"github.com/sarchlab/akita/v4/sim"
)

// Store is the contract a controller requires from its backing array: an
// address-indexed store of fixed-width words, supporting one write and
// one read in the same cycle. A Store holds no occupancy or validity
// information. The controller alone decides which slots are live.
type Store interface {
	// WriteWord stores a word into the given slot.
	WriteWord(slot int, word uint64)
	// ReadWord returns the word held in the given slot.
	ReadWord(slot int) uint64
	// Depth returns the number of word slots.
	Depth() int
	// WordBits returns the word width in bits.
	WordBits() int
}

// Mask returns the mask that keeps the low wordBits bits of a word.
// Width must be between 1 and 64 bits.
func Mask(wordBits int) uint64 {
	if wordBits < 1 || wordBits > 64 {
		log.Panicf("word width must be 1-64 bits, got %d", wordBits)
	}
	if wordBits == 64 {
		return ^uint64(0)
	}
	return (uint64(1) << wordBits) - 1
}

// Array is a Store backed by an Akita storage object. Each word occupies
// the minimum number of bytes that holds the configured width, packed
// little-endian.
type Array struct {
	name      string
	storage   *mem.Storage
	depth     int
	wordBits  int
	wordBytes uint64
	mask      uint64
}

// NewArray creates an Array with depth word slots of wordBits bits each.
func NewArray(name string, depth, wordBits int) *Array {
	sim.NameMustBeValid(name)

	if depth < 1 {
		log.Panicf("array depth must be >= 1, got %d", depth)
	}

	mask := Mask(wordBits)
	wordBytes := uint64((wordBits + 7) / 8)

	return &Array{
		name:      name,
		storage:   mem.NewStorage(uint64(depth) * wordBytes),
		depth:     depth,
		wordBits:  wordBits,
		wordBytes: wordBytes,
		mask:      mask,
	}
}

// Name returns the name of the array.
func (a *Array) Name() string {
	return a.name
}

// Depth returns the number of word slots.
func (a *Array) Depth() int {
	return a.depth
}

// WordBits returns the word width in bits.
func (a *Array) WordBits() int {
	return a.wordBits
}

// WriteWord stores a word into the given slot. Bits above the configured
// width are discarded.
func (a *Array) WriteWord(slot int, word uint64) {
	a.slotMustBeValid(slot)

	word &= a.mask
	buf := make([]byte, a.wordBytes)
	for i := 0; i < len(buf); i++ {
		buf[i] = byte(word >> (i * 8))
	}

	if err := a.storage.Write(uint64(slot)*a.wordBytes, buf); err != nil {
		log.Panic(err)
	}
}

// ReadWord returns the word held in the given slot. Slots that were
// never written read as zero.
func (a *Array) ReadWord(slot int) uint64 {
	a.slotMustBeValid(slot)

	data, err := a.storage.Read(uint64(slot)*a.wordBytes, a.wordBytes)
	if err != nil {
		log.Panic(err)
	}

	var word uint64
	for i := 0; i < len(data); i++ {
		word |= uint64(data[i]) << (i * 8)
	}
	return word & a.mask
}

func (a *Array) slotMustBeValid(slot int) {
	if slot < 0 || slot >= a.depth {
		log.Panicf("slot %d out of range [0, %d)", slot, a.depth)
	}
}
