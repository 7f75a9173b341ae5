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
	"encoding/json"
	"net/http"
)

// decodedOWID is the JSON shape returned by HandlerDecodeAndVerify: the
// decoded OWID fields plus the verification outcome and the signer's
// published name.
type decodedOWID struct {
	Version   byte   `json:"version"`
	Domain    string `json:"domain"`
	TimeStamp uint32 `json:"timestamp"`
	Signer    string `json:"signer"`
	Status    string `json:"status"`
}

// HandlerDecodeAndVerify decodes the base64 "owid" form value, verifies it
// against the domain's registered signer using the target supplied in the
// "target" form value, and returns the combined result as JSON.
func HandlerDecodeAndVerify(s *Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			returnAPIError(s, w, err)
			return
		}

		o, err := FromBase64(r.FormValue("owid"))
		if err != nil {
			returnAPIError(s, w, err)
			return
		}
		o.Target = BytesTarget(r.FormValue("target"))

		g, err := s.GetSigner(o.Domain)
		if err != nil {
			returnAPIError(s, w, err)
			return
		}

		result := decodedOWID{
			Version:   o.Version,
			Domain:    o.Domain,
			TimeStamp: ToTimestamp(o.TimeStamp),
		}
		if g == nil {
			result.Status = SignerNotFound.String()
		} else {
			result.Signer = g.Name
			status, err := o.VerifyWithPublicKeys(g)
			if err != nil {
				returnAPIError(s, w, err)
				return
			}
			result.Status = status.String()
		}

		body, err := json.Marshal(result)
		if err != nil {
			returnAPIError(s, w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		w.Write(body)
	}
}
