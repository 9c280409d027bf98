package describe_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbckr/fwver/internal/apperr"
	"github.com/tbckr/fwver/internal/describe"
	"github.com/tbckr/fwver/internal/testutil"
)

func TestDescribe_Tag(t *testing.T) {
	runner := &testutil.FakeRunner{Output: "v1.4.0"}
	d := describe.New(runner, describe.Options{}, testutil.NopLogger())

	res := d.Describe(context.Background(), "/repo")
	assert.Equal(t, "1.4.0", res.Version)
	assert.Equal(t, describe.SourceTag, res.Source)
	assert.Equal(t, "v1.4.0", res.Raw)
	assert.True(t, res.Description.Exact())
	assert.NoError(t, res.Err)
	assert.False(t, res.Fallback())

	calls := runner.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/repo", calls[0].Dir)
	assert.Equal(t, "git", calls[0].Name)
	assert.Equal(t, []string{"describe", "--tags", "--always"}, calls[0].Args)
}

func TestDescribe_CommitsAfterTag(t *testing.T) {
	runner := &testutil.FakeRunner{Output: "v1.4.0-3-g1a2b3c4"}
	d := describe.New(runner, describe.Options{}, testutil.NopLogger())

	res := d.Describe(context.Background(), ".")
	assert.Equal(t, "1.4.0-3-g1a2b3c4", res.Version)
	assert.Equal(t, describe.SourceTag, res.Source)
	assert.Equal(t, 3, res.Description.Distance)
}

func TestDescribe_NoTags(t *testing.T) {
	runner := &testutil.FakeRunner{Output: "1a2b3c4"}
	d := describe.New(runner, describe.Options{}, testutil.NopLogger())

	res := d.Describe(context.Background(), ".")
	assert.Equal(t, "1a2b3c4", res.Version)
	assert.Equal(t, describe.SourceCommit, res.Source)
	assert.Equal(t, "1a2b3c4", res.Description.Hash)
}

func TestDescribe_QueryFails(t *testing.T) {
	cause := errors.New("exit status 128")
	runner := &testutil.FakeRunner{Err: cause}
	d := describe.New(runner, describe.Options{}, testutil.NopLogger())

	res := d.Describe(context.Background(), ".")
	assert.Equal(t, "dev", res.Version)
	assert.Equal(t, describe.SourceFallback, res.Source)
	assert.True(t, res.Fallback())
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, apperr.ErrQueryFailed)
	assert.ErrorIs(t, res.Err, cause)
}

func TestDescribe_EmptyOutput(t *testing.T) {
	for _, out := range []string{"", "  \n", "v", "vvv"} {
		t.Run(out, func(t *testing.T) {
			d := describe.New(&testutil.FakeRunner{Output: out}, describe.Options{}, testutil.NopLogger())
			res := d.Describe(context.Background(), ".")
			assert.Equal(t, "dev", res.Version)
			assert.ErrorIs(t, res.Err, apperr.ErrQueryFailed)
		})
	}
}

func TestDescribe_CustomSentinel(t *testing.T) {
	d := describe.New(&testutil.FakeRunner{Err: errors.New("boom")},
		describe.Options{Sentinel: "unknown"}, testutil.NopLogger())

	assert.Equal(t, "unknown", d.Describe(context.Background(), ".").Version)
}

func TestDescribe_SentinelIsNormalized(t *testing.T) {
	d := describe.New(&testutil.FakeRunner{Err: errors.New("boom")},
		describe.Options{Sentinel: "v0.0.0"}, testutil.NopLogger())

	assert.Equal(t, "0.0.0", d.Describe(context.Background(), ".").Version)
}

func TestDescribe_Override(t *testing.T) {
	runner := &testutil.FakeRunner{Output: "v9.9.9"}
	d := describe.New(runner, describe.Options{Override: "v2.0.0-ci.5"}, testutil.NopLogger())

	res := d.Describe(context.Background(), ".")
	assert.Equal(t, "2.0.0-ci.5", res.Version)
	assert.Equal(t, describe.SourceOverride, res.Source)
	assert.Empty(t, runner.Calls(), "override must not run git")
}

func TestDescribe_OverrideOnlyPrefixRunsQuery(t *testing.T) {
	runner := &testutil.FakeRunner{Output: "v1.0.0"}
	d := describe.New(runner, describe.Options{Override: "v"}, testutil.NopLogger())

	res := d.Describe(context.Background(), ".")
	assert.Equal(t, "1.0.0", res.Version)
	assert.Len(t, runner.Calls(), 1)
}

func TestDescribe_NoPrefix(t *testing.T) {
	d := describe.New(&testutil.FakeRunner{Output: "v1.0.0"},
		describe.Options{NoPrefix: true}, testutil.NopLogger())

	assert.Equal(t, "v1.0.0", d.Describe(context.Background(), ".").Version)
}

func TestDescribe_Args(t *testing.T) {
	d := describe.New(&testutil.FakeRunner{}, describe.Options{
		Git:         "/usr/bin/git",
		Dirty:       true,
		FirstParent: true,
		Abbrev:      10,
		Match:       []string{"v*", "fw-*"},
	}, testutil.NopLogger())

	assert.Equal(t, []string{
		"describe", "--tags", "--always",
		"--dirty",
		"--first-parent",
		"--abbrev=10",
		"--match", "v*",
		"--match", "fw-*",
	}, d.Args())
	assert.Equal(t, "/usr/bin/git", d.Options().Git)
}

func TestDescribe_NeverEmptyNeverPrefixed(t *testing.T) {
	outputs := []string{"", "v", "v1", "vv1", "1", "abc1234", "v1-1-gabc1234-dirty"}
	for _, out := range outputs {
		for _, fail := range []bool{false, true} {
			runner := &testutil.FakeRunner{Output: out}
			if fail {
				runner.Err = errors.New("failed")
			}
			res := describe.New(runner, describe.Options{}, testutil.NopLogger()).
				Describe(context.Background(), ".")
			assert.NotEmpty(t, res.Version, "output %q fail=%v", out, fail)
			assert.False(t, strings.HasPrefix(res.Version, "v"), "output %q fail=%v", out, fail)
		}
	}
}
