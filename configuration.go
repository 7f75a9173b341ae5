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
	"fmt"
	"os"
)

// Configuration holds the settings for running a Signer Authority: storage
// selection is via environment variables (see store.go), this file covers
// everything else - presentation and operational behaviour.
type Configuration struct {
	Port            string `json:"port"`
	BackgroundColor string `json:"backgroundColor"`
	MessageColor    string `json:"messageColor"`
	Debug           bool   `json:"debug"`
}

// NewConfig creates a Configuration from file. Matching the teacher's own
// behaviour, neither case is returned as an error: a missing file is
// reported on standard output, and a malformed file's decode error is
// ignored, leaving whatever fields decoded before it. The zero-value
// Configuration is still usable.
func NewConfig(file string) Configuration {
	var c Configuration
	configFile, err := os.Open(file)
	if err != nil {
		fmt.Println(err.Error())
		return c
	}
	defer configFile.Close()
	json.NewDecoder(configFile).Decode(&c)
	return c
}
