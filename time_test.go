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
	"testing"
	"time"
)

func TestTimestampRoundTrip(t *testing.T) {
	in := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	ts := ToTimestamp(in)
	out := FromTimestamp(ts)
	if !out.Equal(in) {
		t.Fatalf("round trip mismatch: got %v, want %v", out, in)
	}
}

func TestTimestampBase(t *testing.T) {
	if ToTimestamp(epochBase) != 0 {
		t.Fatalf("expected epoch base to be timestamp 0, got %d", ToTimestamp(epochBase))
	}
}

func TestTimestampIgnoresLocalZone(t *testing.T) {
	loc := time.FixedZone("test", -5*60*60)
	inLocal := time.Date(2024, time.March, 15, 5, 30, 0, 0, loc)
	inUTC := inLocal.UTC()
	if ToTimestamp(inLocal) != ToTimestamp(inUTC) {
		t.Fatal("timestamp should be independent of the input's zone")
	}
}
