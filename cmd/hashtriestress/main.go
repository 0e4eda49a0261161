// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Command hashtriestress exercises concurrent publication of Container
// versions: one writer branches and mutates while several readers load
// whatever version is currently published, the way the teacher's
// cmd/synclite.go exercises a routing table under the same pattern.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/sync/errgroup"

	"github.com/hashtrie/hashtrie"
)

// syncContainer publishes successive Container versions for lock-free
// concurrent reads, mirroring the teacher's SyncLite: a single writer
// lock serializes branch-and-mutate, while readers only ever Load an
// atomic pointer.
type syncContainer struct {
	atomic.Pointer[hashtrie.Container[string, int]]
	writerSeq chan struct{}
}

func newSyncContainer() *syncContainer {
	s := &syncContainer{writerSeq: make(chan struct{}, 1)}
	s.writerSeq <- struct{}{}
	s.Store(hashtrie.New[string, int]())
	return s
}

func (s *syncContainer) mutate(fn func(c *hashtrie.Container[string, int])) {
	<-s.writerSeq
	defer func() { s.writerSeq <- struct{}{} }()

	old := s.Load()
	next := old.Branch() // freezes old (safe for concurrent readers) and returns a fresh mutable version
	fn(next)
	s.Store(next)
}

func main() {
	readers := flag.Int("readers", 4, "concurrent reader goroutines")
	writes := flag.Int("writes", 200_000, "total inserts performed by the writer")
	duration := flag.Duration("duration", 5*time.Second, "how long readers keep polling")
	dump := flag.Bool("dump", false, "dump the final container with go-spew before exiting")
	flag.Parse()

	log.SetFlags(log.Lmicroseconds)

	if lvl := os.Getenv("HASHTRIE_ASSERT_LEVEL"); lvl != "" {
		log.Printf("HASHTRIE_ASSERT_LEVEL=%s", lvl)
	}

	sc := newSyncContainer()
	prng := rand.New(rand.NewPCG(42, 42))

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i < *readers; i++ {
		g.Go(func() error {
			hits := 0
			for {
				select {
				case <-ctx.Done():
					log.Printf("reader done, hits=%d", hits)
					return nil
				default:
				}
				c := sc.Load()
				key := strconv.Itoa(prng.IntN(*writes + 1))
				if c.ContainsKey(key) {
					hits++
				}
			}
		})
	}

	g.Go(func() error {
		defer cancel()
		ts := time.Now()
		for i := 0; i < *writes; i++ {
			key := strconv.Itoa(i)
			sc.mutate(func(c *hashtrie.Container[string, int]) {
				c.Insert(key, i)
			})
		}
		log.Printf("writer done: %d inserts in %v, final len=%d", *writes, time.Since(ts), sc.Load().Len())
		return nil
	})

	if err := g.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *dump {
		spew.Dump(sc.Load())
	}
}
