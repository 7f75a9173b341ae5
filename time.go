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

import "time"

// epochBase is the fixed reference point compact timestamps are measured
// from: minutes elapsed since 2020-01-01T00:00:00Z UTC. Fixed to UTC
// regardless of the host's local zone - see SPEC_FULL.md's Open Question
// decision on this point.
var epochBase = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// ToTimestamp converts t to the number of whole minutes since epochBase. t
// is normalized to UTC before the difference is taken so that two hosts in
// different zones produce the same value for the same instant.
func ToTimestamp(t time.Time) uint32 {
	d := t.UTC().Sub(epochBase)
	return uint32(d.Minutes())
}

// FromTimestamp converts a compact timestamp back to a time.Time in UTC.
func FromTimestamp(v uint32) time.Time {
	return epochBase.Add(time.Duration(v) * time.Minute)
}
