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

import "net/http"

// HandlerDecode decodes the base64 "owid" form value and returns it as
// JSON. No signature verification is performed - see HandlerDecodeAndVerify
// for that.
func HandlerDecode(s *Services) http.HandlerFunc {
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
		body, err := o.MarshalJSON()
		if err != nil {
			returnAPIError(s, w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		w.Write(body)
	}
}
