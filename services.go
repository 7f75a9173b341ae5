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
	"net/http"

	"github.com/SWAN-community/access-go"
	"github.com/SWAN-community/common-go"
)

// Services bundles everything a Signer Authority's HTTP handlers need:
// configuration, persistent storage, and the access control used to
// protect the key-rotation endpoint. Registration is not access-checked.
type Services struct {
	config *Configuration
	store  Store
	access access.Access
}

// NewServices builds a Services from its three components.
func NewServices(config *Configuration, store Store, access access.Access) *Services {
	return &Services{config: config, store: store, access: access}
}

// GetSigner returns the signer registered for domain.
func (s *Services) GetSigner(domain string) (*Signer, error) {
	return s.store.GetSigner(domain)
}

// GetSignerHttp looks up the signer for r.Host, writing a 404 response and
// returning nil if none is registered. Handlers that need "the signer for
// this request" all go through this helper.
func (s *Services) GetSignerHttp(w http.ResponseWriter, r *http.Request) *Signer {
	g, err := s.GetSigner(r.Host)
	if err != nil {
		common.ReturnServerError(w, err)
		return nil
	}
	if g == nil {
		common.ReturnApplicationError(w, &common.HttpError{
			Request: r,
			Message: "domain not registered as an OWID signer",
			Code:    http.StatusNotFound})
		return nil
	}
	return g
}
