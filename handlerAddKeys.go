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
	"fmt"
	"net/http"
	"time"

	"github.com/SWAN-community/common-go"
)

// HandlerAddKeys generates and registers a new key pair for the signer
// associated with the request's host, leaving existing keys in place so
// OWIDs already in circulation keep verifying until they age out.
func HandlerAddKeys(s *Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.access.GetAllowedHttp(w, r) {
			return
		}

		g := s.GetSignerHttp(w, r)
		if g == nil {
			return
		}

		if _, err := g.AddKeyPair(time.Now().UTC()); err != nil {
			common.ReturnServerError(w, err)
			return
		}
		if err := s.store.SetSigner(g); err != nil {
			common.ReturnServerError(w, err)
			return
		}

		common.SendString(w, fmt.Sprintf("new key added for signer '%s'", g.Domain))
	}
}
