package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algointent/atomix/internal/output"
	atomixerr "github.com/algointent/atomix/pkg/errors"
)

func TestAssetCreate_DryRun(t *testing.T) {
	withTestGlobals(t)
	withMockPrompts(t, []byte("correct horse battery"), true)
	saveTestWallet(t)

	node := &fakeNode{}
	startFakeNode(t, node)

	assetCreateName = "My Token"
	assetCreateTotal = 1_000_000
	assetCreateDecimals = 2
	assetDryRun = true
	t.Cleanup(func() {
		assetCreateName, assetCreateTotal, assetCreateDecimals = "", 0, 0
		assetDryRun = false
	})

	cmd, buf := testCommand()
	require.NoError(t, runAssetCreate(cmd, nil))
	assert.Contains(t, buf.String(), "Dry run")
	assert.Equal(t, int64(0), node.submits.Load())
}

func TestAssetOptOut_Declined(t *testing.T) {
	withTestGlobals(t)
	withMockPrompts(t, []byte("correct horse battery"), false)

	assetOptOutID = 7
	assetOptOutYes = false
	t.Cleanup(func() { assetOptOutID = 0 })

	cmd, _ := testCommand()
	err := runAssetOptOut(cmd, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, atomixerr.ErrInvalidInput)
}

func TestAssetOptOut_WarnsAboutBurn(t *testing.T) {
	withTestGlobals(t)
	withMockPrompts(t, []byte("correct horse battery"), true)
	saveTestWallet(t)

	node := &fakeNode{}
	startFakeNode(t, node)

	var stderr bytes.Buffer
	origStderr := output.Stderr
	output.Stderr = &stderr
	t.Cleanup(func() { output.Stderr = origStderr })

	assetOptOutID = 7
	assetDryRun = true
	t.Cleanup(func() {
		assetOptOutID = 0
		assetDryRun = false
	})

	cmd, buf := testCommand()
	require.NoError(t, runAssetOptOut(cmd, nil))
	assert.Contains(t, buf.String(), "Dry run")
	assert.Contains(t, stderr.String(), "burned")
	assert.Equal(t, int64(0), node.submits.Load())
}
