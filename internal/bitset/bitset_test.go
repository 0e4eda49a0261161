// SPDX-License-Identifier: MIT
//
// Some tests are taken and modified from:
//
//  github.com/bits-and-blooms/bitset
//
// All introduced bugs belong to me!
//
// original license:
// ---------------------------------------------------
// Copyright 2014 Will Fitzgerald. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// ---------------------------------------------------

package bitset

import (
	"math/rand/v2"
	"slices"
	"testing"
)

func TestNil(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Error("A nil bitset must not panic")
		}
	}()

	b := BitSet(nil)
	b.Set(0)

	b = BitSet(nil)
	b.Clear(1000)

	b = BitSet(nil)
	_ = b.Clone()

	b = BitSet(nil)
	b.Count()

	b = BitSet(nil)
	b.Test(42)

	b = BitSet(nil)
	b.NextSet(0)
}

func TestZeroValue(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Error("A zero value bitset must not panic")
		}
	}()

	b := BitSet{}
	b.Set(0)

	b = BitSet{}
	b.Clear(1000)

	b = BitSet{}
	b.Clone()

	b = BitSet{}
	b.Count()

	b = BitSet{}
	b.Test(42)

	b = BitSet{}
	b.NextSet(0)
}

func TestBitSetUntil(t *testing.T) {
	var b BitSet
	var last uint = 900
	b.Set(last)
	for i := range last {
		if b.Test(i) {
			t.Errorf("Bit %d is set, and it shouldn't be.", i)
		}
	}
}

func TestExpand(t *testing.T) {
	var b BitSet
	for i := range 512 {
		b.Set(uint(i))
	}
	want := 8
	if len(b) != want {
		t.Errorf("Set(511), want len: %d, got: %d", want, len(b))
	}
}

func TestClone(t *testing.T) {
	var b BitSet
	c := b.Clone()

	if !slices.Equal(b, c) {
		t.Error("clone of nil BitSet should also be nil")
	}

	// make random numbers
	var rands []uint64
	for range 8 {
		rands = append(rands, rand.Uint64())
	}

	b = rands
	c = b.Clone()

	if !slices.Equal(b, c) {
		t.Error("cloned random BitSet is not equal")
	}
}

func TestTest(t *testing.T) {
	var b BitSet
	b.Set(100)
	if !b.Test(100) {
		t.Errorf("Bit %d is clear, and it shouldn't be.", 100)
	}
}

func TestNextSet(t *testing.T) {
	var b BitSet
	b.Set(0)
	b.Set(1)
	b.Set(2)

	data := make([]uint, 3)
	j := 0
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		data[j] = i
		j++
	}
	if data[0] != 0 {
		t.Errorf("bug 0")
	}
	if data[1] != 1 {
		t.Errorf("bug 1")
	}
	if data[2] != 2 {
		t.Errorf("bug 2")
	}
	b.Set(10)
	b.Set(2000)

	data = make([]uint, 5)
	j = 0
	for i, e := b.NextSet(0); e; i, e = b.NextSet(i + 1) {
		data[j] = i
		j++
	}
	if data[0] != 0 {
		t.Errorf("bug 0")
	}
	if data[1] != 1 {
		t.Errorf("bug 1")
	}
	if data[2] != 2 {
		t.Errorf("bug 2")
	}
	if data[3] != 10 {
		t.Errorf("bug 3")
	}
	if data[4] != 2000 {
		t.Errorf("bug 4")
	}
}

func TestCount(t *testing.T) {
	var b BitSet
	tot := uint(64*4 + 11) // just an unmagic number
	checkLast := true
	for i := range tot {
		sz := uint(b.Count())
		if sz != i {
			t.Errorf("Count reported as %d, but it should be %d", sz, i)
			checkLast = false
			break
		}
		b.Set(i)
	}
	if checkLast {
		sz := uint(b.Count())
		if sz != tot {
			t.Errorf("After all bits set, size reported as %d, but it should be %d", sz, tot)
		}
	}
}

// test setting every 3rd bit, just in case something odd is happening
func TestCount2(t *testing.T) {
	var b BitSet
	tot := uint(64*4 + 11)
	for i := uint(0); i < tot; i += 3 {
		sz := uint(b.Count())
		if sz != i/3 {
			t.Errorf("Count reported as %d, but it should be %d", sz, i/3)
			break
		}
		b.Set(i)
	}
}

func TestPopcntSlice(t *testing.T) {
	s := []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}
	res := uint64(popcntSlice(s))
	const l uint64 = 27
	if res != l {
		t.Errorf("Wrong popcount %d != %d", res, l)
	}
}
