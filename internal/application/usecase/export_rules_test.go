package usecase_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/adshield/internal/application/usecase"
	"github.com/bnema/adshield/internal/filtering/rules"
)

func TestExportRulesUseCase_Execute(t *testing.T) {
	uc := usecase.NewExportRulesUseCase(rules.Default(), newStylesheet(), rules.DefaultSpecialHosts)

	t.Run("webkit json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, uc.Execute(testContext(), &buf, usecase.ExportInput{Format: "WebKit"}))

		var entries []map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
		assert.NotEmpty(t, entries)
	})

	t.Run("filter list", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, uc.Execute(testContext(), &buf, usecase.ExportInput{Format: "text"}))
		assert.Contains(t, buf.String(), "doubleclick.net")
	})

	t.Run("site stylesheet", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, uc.Execute(testContext(), &buf, usecase.ExportInput{Format: "css", PageURL: "https://www.youtube.com/"}))
		assert.Contains(t, buf.String(), "display")
	})

	t.Run("unknown format", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, uc.Execute(testContext(), &buf, usecase.ExportInput{Format: "pdf"}))
		assert.Zero(t, buf.Len())
	})
}
