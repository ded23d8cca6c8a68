// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package doc

import (
	"embed"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// FS embeds the Open API document of the generator API.
//
//go:embed generator.yaml
var FS embed.FS

type document struct {
	Info struct {
		Title   string `yaml:"title"`
		Version string `yaml:"version"`
	} `yaml:"info"`
	Paths map[string]map[string]yaml.Node `yaml:"paths"`
}

var openAPI = mustLoad()

func mustLoad() *document {
	content, err := FS.ReadFile("generator.yaml")
	if err != nil {
		panic(err)
	}
	var d document
	if err := yaml.Unmarshal(content, &d); err != nil {
		panic(err)
	}
	return &d
}

// Version returns the version of the documented API.
func Version() string {
	return openAPI.Info.Version
}

// Operations returns the documented routes as "METHOD /path", sorted.
func Operations() []string {
	ops := make([]string, 0, len(openAPI.Paths))
	for path, methods := range openAPI.Paths {
		for method := range methods {
			ops = append(ops, strings.ToUpper(method)+" "+path)
		}
	}
	sort.Strings(ops)
	return ops
}
