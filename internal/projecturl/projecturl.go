// Package projecturl resolves a GitHub Projects v2 URL into its owner
// and project number. Only the path is inspected, so GitHub Enterprise
// hosts resolve the same way as github.com.
package projecturl

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var (
	// ErrInvalidProjectURL indicates the URL does not contain a
	// recognizable projects path.
	ErrInvalidProjectURL = errors.New("invalid project URL")
	// ErrUnsupportedOwnerType indicates an owner path segment other
	// than orgs or users. The regexp restricts captures to those two
	// tokens, so hitting this means the pattern and the mapping have
	// drifted apart.
	ErrUnsupportedOwnerType = errors.New("unsupported owner type")
)

// Owner kinds as used in the project-id GraphQL query.
const (
	OwnerKindOrganization = "organization"
	OwnerKindUser         = "user"
)

var urlPattern = regexp.MustCompile(`/(orgs|users)/([^/]+)/projects/(\d+)`)

// Ref identifies a project by its owner and number, before the opaque
// project node id has been resolved.
type Ref struct {
	OwnerKind     string
	OwnerName     string
	ProjectNumber int
}

// Resolve parses a project URL such as
// https://github.com/orgs/myorg/projects/1 into a Ref. The host part
// is ignored; matching is on the path shape only.
func Resolve(url string) (Ref, error) {
	m := urlPattern.FindStringSubmatch(url)
	if m == nil {
		return Ref{}, fmt.Errorf("%w: %s", ErrInvalidProjectURL, url)
	}

	kind, err := ownerKind(m[1])
	if err != nil {
		return Ref{}, err
	}

	number, err := strconv.Atoi(m[3])
	if err != nil {
		// \d+ guarantees digits; overflow is the only way here
		return Ref{}, fmt.Errorf("%w: %s", ErrInvalidProjectURL, url)
	}

	return Ref{
		OwnerKind:     kind,
		OwnerName:     m[2],
		ProjectNumber: number,
	}, nil
}

// ownerKind maps a URL path token to the GraphQL query field name.
func ownerKind(token string) (string, error) {
	switch token {
	case "orgs":
		return OwnerKindOrganization, nil
	case "users":
		return OwnerKindUser, nil
	default:
		return "", fmt.Errorf("%w: %s, must be one of 'orgs' or 'users'", ErrUnsupportedOwnerType, token)
	}
}
