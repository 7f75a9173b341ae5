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

package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/SWAN-community/access-go"

	owid "github.com/SWAN-community/owid"
)

func main() {
	configFile := flag.String("config", "appsettings.json", "path to the configuration file")
	flag.Parse()

	config := owid.NewConfig(*configFile)

	store := owid.NewStore(config)

	keys := strings.FieldsFunc(os.Getenv("OWID_ACCESS_KEYS"), func(r rune) bool {
		return r == ','
	})
	services := owid.NewServices(&config, store, access.NewFixed(keys))

	owid.AddHandlers(services)

	port := config.Port
	if port == "" {
		port = "443"
	}

	log.Printf("owid: listening on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, nil))
}
