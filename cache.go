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
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// signerCacheKey builds the structural key a Cache addresses a signer by.
// Deliberately a plain string derived from (version, domain) values, never
// from a *Signer pointer - two lookups for the same domain must hit the
// same cache entry regardless of which *Signer instance answered them
// first.
func signerCacheKey(version byte, domain string) string {
	return fmt.Sprintf("v%d|%s", version, domain)
}

// Cache resolves a Signer given its (version, domain) pair, satisfying the
// Resolver interface so it can be passed directly to OWID.Verify.
type Cache interface {
	Resolver
}

// fetchFunc retrieves a Signer from whatever backs a Cache - a Signer
// Authority's HTTP endpoint, a local store, or a test double.
type fetchFunc func(ctx context.Context, version byte, domain string) (*Signer, error)

// call represents one in-flight fetch for a cache key. Every concurrent
// Get for the same key waits on the same call instead of issuing its own
// fetch - see SPEC_FULL.md's concurrency note on cache coalescing.
type call struct {
	done   chan struct{}
	signer *Signer
	err    error
}

// MapCache is an in-memory Cache keyed on signerCacheKey. Concurrent Get
// calls for the same key coalesce into a single underlying fetch.
type MapCache struct {
	fetch fetchFunc
	delay time.Duration

	mu      sync.Mutex
	entries map[string]*Signer
	inFlight map[string]*call
}

// NewMapCache builds a MapCache that retrieves misses via fetch. delay, if
// non-zero, is applied before each fetch completes - used by tests to
// exercise the coalescing path deterministically.
func NewMapCache(fetch fetchFunc, delay time.Duration) *MapCache {
	return &MapCache{
		fetch:    fetch,
		delay:    delay,
		entries:  make(map[string]*Signer),
		inFlight: make(map[string]*call),
	}
}

// Get returns the Signer for (version, domain), fetching and caching it on
// first use. A nil, nil result means the fetch completed but found no
// signer.
func (c *MapCache) Get(ctx context.Context, version byte, domain string) (*Signer, error) {
	key := signerCacheKey(version, domain)

	c.mu.Lock()
	if s, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return s, nil
	}
	if existing, ok := c.inFlight[key]; ok {
		c.mu.Unlock()
		return waitForCall(ctx, existing)
	}
	cl := &call{done: make(chan struct{})}
	c.inFlight[key] = cl
	c.mu.Unlock()

	go c.resolve(key, version, domain, cl)

	return waitForCall(ctx, cl)
}

// resolve performs the actual fetch for key and publishes the result to
// every waiter blocked on cl.done, then records it in entries so later
// Gets skip the fetch entirely.
func (c *MapCache) resolve(key string, version byte, domain string, cl *call) {
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	signer, err := c.fetch(context.Background(), version, domain)
	cl.signer = signer
	cl.err = err

	c.mu.Lock()
	if err == nil {
		c.entries[key] = signer
	}
	delete(c.inFlight, key)
	c.mu.Unlock()

	close(cl.done)
}

// waitForCall blocks until cl completes or ctx is cancelled, whichever
// comes first.
func waitForCall(ctx context.Context, cl *call) (*Signer, error) {
	select {
	case <-cl.done:
		return cl.signer, cl.err
	case <-ctx.Done():
		return nil, ErrCancelled
	}
}

// Invalidate removes any cached entry for (version, domain), forcing the
// next Get to fetch again.
func (c *MapCache) Invalidate(version byte, domain string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, signerCacheKey(version, domain))
}

// HTTPCache is a Cache that fetches signers from a Signer Authority's
// HTTP endpoint, wrapping a MapCache for the actual storage and
// coalescing behaviour.
type HTTPCache struct {
	*MapCache
	baseURL string
	client  *http.Client
}

// NewHTTPCache builds an HTTPCache that fetches from baseURL + the
// standard signer endpoint path. client defaults to http.DefaultClient if
// nil.
func NewHTTPCache(baseURL string, client *http.Client, delay time.Duration) *HTTPCache {
	if client == nil {
		client = http.DefaultClient
	}
	h := &HTTPCache{baseURL: baseURL, client: client}
	h.MapCache = NewMapCache(h.fetchFromHTTP, delay)
	return h
}

// fetchFromHTTP issues the GET request for a signer's published (public
// keys only) record.
func (h *HTTPCache) fetchFromHTTP(ctx context.Context, version byte, domain string) (*Signer, error) {
	u := fmt.Sprintf("%s/owid/api/v%d/signer?domain=%s", h.baseURL, version, url.QueryEscape(domain))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, ErrSignerFetchFailed
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, ErrSignerFetchFailed
	}
	var s Signer
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
