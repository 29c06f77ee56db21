/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/promptfy/internal/methodology"
)

// resolveMethodology accepts ids and display names ("Tracer Bullet").
func resolveMethodology(arg string) (*methodology.Definition, error) {
	def, err := methodology.Lookup(methodology.ParseID(arg))
	if err != nil {
		return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(methodologyIDs(), ", "))
	}
	return def, nil
}

func methodologyIDs() []string {
	ids := methodology.Default().IDs()
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}
	return out
}
