package filesystem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sophialabs/harcleaner/internal/domain/profile"
)

// ProfileRepository loads filter profiles from YAML files.
//
// Values tagged !include are replaced by the referenced file, resolved
// relative to the profile's directory.
type ProfileRepository struct{}

// NewProfileRepository creates a profile repository.
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{}
}

// Load reads and decodes the profile at path. Unknown keys are rejected.
func (r *ProfileRepository) Load(_ context.Context, path string) (*profile.Profile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve profile path: %w", err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	p, err := DecodeProfile(data, filepath.Dir(abs))
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// DecodeProfile decodes YAML profile data. Includes resolve against baseDir;
// an empty baseDir disables them.
func DecodeProfile(data []byte, baseDir string) (*profile.Profile, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", profile.ErrInvalid, err)
	}
	if root.Kind == 0 {
		return &profile.Profile{}, nil
	}

	if baseDir != "" {
		if err := newIncludeResolver(baseDir).resolve(&root); err != nil {
			return nil, fmt.Errorf("%w: %v", profile.ErrInvalid, err)
		}
	}

	// Re-encode so KnownFields applies to the resolved tree.
	resolved, err := yaml.Marshal(&root)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode profile: %w", err)
	}

	var yp yamlProfile
	dec := yaml.NewDecoder(bytes.NewReader(resolved))
	dec.KnownFields(true)
	if err := dec.Decode(&yp); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", profile.ErrInvalid, err)
	}
	return toProfile(&yp), nil
}

func toProfile(yp *yamlProfile) *profile.Profile {
	p := &profile.Profile{
		Types:   toIncludeExclude(yp.Types),
		URLs:    toIncludeExclude(yp.URLs),
		Headers: toIncludeExclude(yp.Headers),
		Cookies: toIncludeExclude(yp.Cookies),
		Methods: profile.Methods{
			XHROnly:        yp.Methods.XHROnly,
			IncludeExclude: profile.IncludeExclude{Include: yp.Methods.Include, Exclude: yp.Methods.Exclude},
		},
		Status:     profile.StatusCodes{Include: yp.Status.Include, Exclude: yp.Status.Exclude},
		Size:       profile.SizeRange{Min: yp.Size.Min, Max: yp.Size.Max},
		Expression: yp.Expression,
		Privacy: profile.Privacy{
			RemoveCookies:             yp.Privacy.RemoveCookies,
			RemoveAuthTokens:          yp.Privacy.RemoveAuthTokens,
			RemovePersonalIdentifiers: yp.Privacy.RemovePersonalIdentifiers,
			RemoveTrackingHeaders:     yp.Privacy.RemoveTrackingHeaders,
			SensitiveHeaders:          yp.Privacy.SensitiveHeaders,
			SensitiveParams:           yp.Privacy.SensitiveParams,
		},
		Content: profile.Content{
			RemoveResponse: yp.Content.RemoveResponse,
			RemoveRequest:  yp.Content.RemoveRequest,
			RemoveBase64:   yp.Content.RemoveBase64,
			MaxSize:        yp.Content.MaxSize,
			ExcludeTypes:   yp.Content.ExcludeTypes,
		},
		Vendor: profile.Vendor(yp.Vendor),
	}

	for _, c := range yp.Body {
		p.Body = append(p.Body, profile.BodyCondition{
			Target:      c.Target,
			ContentType: c.ContentType,
			Extractor:   c.Extractor,
			Matcher:     c.Matcher,
		})
	}
	return p
}

func toIncludeExclude(y yamlIncludeExclude) profile.IncludeExclude {
	return profile.IncludeExclude{Include: y.Include, Exclude: y.Exclude}
}
