package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/WanderingWalnut/Grantly/internal/domain"
	"github.com/WanderingWalnut/Grantly/internal/model"
)

const opLoadProfile = "cli.load_profile"

// loadProfile reads an organization profile from a YAML file using the same
// field names as the HTTP API. Unknown keys are rejected so typos surface.
func loadProfile(path string) (model.OrganizationProfile, error) {
	var p model.OrganizationProfile

	b, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("reading profile: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return p, domain.ValidationError(opLoadProfile, fmt.Sprintf("%s: %v", path, err))
	}
	return p, nil
}
