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

	"github.com/SWAN-community/common-go"
)

// HandlerSigner returns the public record (no private keys) for the
// domain named by the request's "domain" query parameter, falling back to
// the request's own Host if none is given.
func HandlerSigner(s *Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			common.ReturnServerError(w, err)
			return
		}
		domain := r.Form.Get("domain")
		if domain == "" {
			domain = r.Host
		}
		g, err := s.GetSigner(domain)
		if err != nil {
			common.ReturnServerError(w, err)
			return
		}
		if g == nil {
			common.ReturnApplicationError(w, &common.HttpError{
				Request: r,
				Message: "domain not registered as an OWID signer",
				Code:    http.StatusNotFound})
			return
		}
		u, err := json.Marshal(g.Public())
		if err != nil {
			common.ReturnServerError(w, err)
			return
		}
		w.Header().Set("Cache-Control", "max-age=60")
		common.SendJS(w, u)
	}
}
