/* ****************************************************************************
 * Copyright 2020 51 Degrees Mobile Experts Limited (51degrees.com)
 *
 * Licensed under the Apache License, Version 2.0 (the "License"); you may not
 * use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
 * WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
 * License for the specific language governing permissions and limitations
 * under the License.
 * ***************************************************************************/

package owid

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestMapCacheFetchesOnMiss(t *testing.T) {
	signer := newTestSigner(t)
	var calls int32
	c := NewMapCache(func(ctx context.Context, version byte, domain string) (*Signer, error) {
		atomic.AddInt32(&calls, 1)
		return signer, nil
	}, 0)

	s, err := c.Get(context.Background(), owidVersion1, testDomain)
	if err != nil {
		t.Fatal(err)
	}
	if s != signer {
		t.Fatal("expected the fetched signer to be returned")
	}

	if _, err := c.Get(context.Background(), owidVersion1, testDomain); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one fetch, got %d", calls)
	}
}

func TestMapCacheCoalescesConcurrentMisses(t *testing.T) {
	signer := newTestSigner(t)
	var calls int32
	c := NewMapCache(func(ctx context.Context, version byte, domain string) (*Signer, error) {
		atomic.AddInt32(&calls, 1)
		return signer, nil
	}, 20*time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Get(context.Background(), owidVersion1, testDomain); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if calls != 1 {
		t.Fatalf("expected concurrent misses to coalesce into one fetch, got %d", calls)
	}
}

func TestMapCacheKeyIsStructuralNotPointer(t *testing.T) {
	first := newTestSigner(t)
	second := newTestSigner(t)
	fetched := []*Signer{first, second}
	i := 0
	c := NewMapCache(func(ctx context.Context, version byte, domain string) (*Signer, error) {
		s := fetched[i]
		i++
		return s, nil
	}, 0)

	a, err := c.Get(context.Background(), owidVersion1, testDomain)
	if err != nil {
		t.Fatal(err)
	}
	c.Invalidate(owidVersion1, testDomain)
	b, err := c.Get(context.Background(), owidVersion1, testDomain)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("expected a fresh fetch after invalidation")
	}
	if a.Domain != b.Domain {
		t.Fatal("both signers should resolve under the same structural key")
	}
}

func TestMapCacheRespectsContextCancellation(t *testing.T) {
	c := NewMapCache(func(ctx context.Context, version byte, domain string) (*Signer, error) {
		time.Sleep(50 * time.Millisecond)
		return nil, nil
	}, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	if _, err := c.Get(ctx, owidVersion1, testDomain); err != ErrCancelled {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}
