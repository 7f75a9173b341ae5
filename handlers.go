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
)

// AddHandlers registers every Signer Authority endpoint on the default
// mux: registration, key rotation, the published signer record, decode,
// and decode-and-verify, for every supported OWID version.
func AddHandlers(s *Services) {
	http.HandleFunc("/owid/register", HandlerRegister(s))
	http.HandleFunc("/owid/add-key", HandlerAddKeys(s))
	for _, v := range owidVersions {
		b := fmt.Sprintf("/owid/api/v%d/", v)
		http.HandleFunc(b+"signer", HandlerSigner(s))
		http.HandleFunc(b+"decode", HandlerDecode(s))
		http.HandleFunc(b+"decode-and-verify", HandlerDecodeAndVerify(s))
	}
}

func returnAPIError(s *Services, w http.ResponseWriter, err error) {
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	http.Error(w, err.Error(), http.StatusBadRequest)
	if s.config.Debug {
		println(err.Error())
	}
}
