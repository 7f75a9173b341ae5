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
	"net/url"
	"time"

	"github.com/SWAN-community/common-go"
)

// Register is the data model driving the registration HTML template.
type Register struct {
	BackgroundColor string
	MessageColor    string

	Domain   string
	Name     string
	Email    string
	TermsURL string

	NameError     string
	EmailError    string
	TermsURLError string

	ReadOnly bool
}

// DisplayErrors reports whether the template should render any of the
// validation error fields.
func (r *Register) DisplayErrors() bool {
	return r.NameError != "" || r.EmailError != "" || r.TermsURLError != ""
}

// HandlerRegister handles registering a domain as a new OWID signer. A
// domain may only be registered once; registering again leaves the stored
// record unchanged and responds with a 404 error naming the domain as
// already registered.
func HandlerRegister(s *Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m := Register{
			Domain:          r.Host,
			BackgroundColor: s.config.BackgroundColor,
			MessageColor:    s.config.MessageColor,
		}

		g, err := s.store.GetSigner(r.Host)
		if err != nil {
			common.ReturnServerError(w, err)
			return
		}
		if g != nil {
			common.ReturnApplicationError(w, &common.HttpError{
				Request: r,
				Message: fmt.Sprintf("domain '%s' already registered", g.Domain),
				Code:    http.StatusNotFound})
			return
		}

		if err := r.ParseForm(); err != nil {
			common.ReturnServerError(w, err)
			return
		}

		m.Name = r.Form.Get("name")
		if len(m.Name) < minNameLength || len(m.Name) > maxNameLength {
			m.NameError = nameLengthMessage
		}

		m.Email = r.Form.Get("email")

		if len(r.Form.Get("termsURL")) > maxTermsURLLength {
			m.TermsURLError = termsLengthMessage
		} else {
			u, err := url.ParseRequestURI(r.Form.Get("termsURL"))
			if err != nil {
				m.TermsURLError = termsInvalidMessage
			} else {
				m.TermsURL = u.String()
			}
		}

		if !m.DisplayErrors() {
			if err := registerNewSigner(s, &m); err != nil {
				common.ReturnApplicationError(w, &common.HttpError{
					Request: r,
					Log:     true,
					Message: "error storing new signer; verify server and " +
						"storage configuration and restart",
					Error: err,
					Code:  http.StatusInternalServerError})
				return
			}
		}

		common.SendHTMLTemplate(w, registerTemplate, &m)
	}
}

func registerNewSigner(s *Services, m *Register) error {
	signer, err := NewSigner(owidVersion1, m.Domain, m.Name, m.Email, m.TermsURL)
	if err != nil {
		return err
	}
	if _, err := signer.AddKeyPair(time.Now().UTC()); err != nil {
		return err
	}
	if err := s.store.SetSigner(signer); err != nil {
		return err
	}
	m.ReadOnly = true
	return nil
}
