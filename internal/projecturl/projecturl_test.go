package projecturl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Organization(t *testing.T) {
	ref, err := Resolve("https://github.com/orgs/myorg/projects/1")

	require.NoError(t, err)
	assert.Equal(t, OwnerKindOrganization, ref.OwnerKind)
	assert.Equal(t, "myorg", ref.OwnerName)
	assert.Equal(t, 1, ref.ProjectNumber)
}

func TestResolve_User(t *testing.T) {
	ref, err := Resolve("https://github.com/users/nipe0324/projects/1")

	require.NoError(t, err)
	assert.Equal(t, OwnerKindUser, ref.OwnerKind)
	assert.Equal(t, "nipe0324", ref.OwnerName)
	assert.Equal(t, 1, ref.ProjectNumber)
}

// Only the path shape matters; the host is not inspected.
func TestResolve_HostAgnostic(t *testing.T) {
	ref, err := Resolve("https://github.example.com/orgs/internal/projects/42")

	require.NoError(t, err)
	assert.Equal(t, OwnerKindOrganization, ref.OwnerKind)
	assert.Equal(t, "internal", ref.OwnerName)
	assert.Equal(t, 42, ref.ProjectNumber)
}

func TestResolve_InvalidURLs(t *testing.T) {
	invalid := []string{
		"https://github.com/orgs/github/repositories",
		"https://github.com/myorg/myrepo/issues/74",
		"https://github.com/orgs/myorg/projects/abc",
		"",
	}

	for _, url := range invalid {
		_, err := Resolve(url)
		assert.ErrorIs(t, err, ErrInvalidProjectURL, "url: %s", url)
	}
}

func TestOwnerKind(t *testing.T) {
	kind, err := ownerKind("orgs")
	require.NoError(t, err)
	assert.Equal(t, "organization", kind)

	kind, err = ownerKind("users")
	require.NoError(t, err)
	assert.Equal(t, "user", kind)

	_, err = ownerKind("unknown")
	assert.ErrorIs(t, err, ErrUnsupportedOwnerType)
}
