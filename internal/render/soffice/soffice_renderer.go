// Package soffice renders spreadsheets to PDF through a headless
// LibreOffice process.
package soffice

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"budgetflow/internal/port"
)

type sofficeRenderer struct {
	binaryPath string
	workDir    string
}

// NewRenderer creates a DocumentRenderer backed by the soffice binary.
func NewRenderer(binaryPath, workDir string) port.DocumentRenderer {
	return &sofficeRenderer{binaryPath: binaryPath, workDir: workDir}
}

// RenderPDF writes the source into a scratch directory, runs a one-shot
// conversion and reads back the produced PDF. The scratch directory is
// removed on return; a killed conversion leaves nothing behind.
func (r *sofficeRenderer) RenderPDF(ctx context.Context, sourceName string, source []byte) ([]byte, error) {
	dir, err := os.MkdirTemp(r.workDir, "render-*")
	if err != nil {
		return nil, fmt.Errorf("soffice: creating scratch dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	sourcePath := filepath.Join(dir, filepath.Base(sourceName))
	if err := os.WriteFile(sourcePath, source, 0o600); err != nil {
		return nil, fmt.Errorf("soffice: writing source: %w", err)
	}

	// Separate profile dir per run; concurrent soffice instances sharing a
	// profile deadlock on its lock file.
	profileArg := fmt.Sprintf("-env:UserInstallation=file://%s/profile", dir)

	cmd := exec.CommandContext(ctx, r.binaryPath,
		profileArg,
		"--headless",
		"--convert-to", "pdf",
		"--outdir", dir,
		sourcePath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("soffice: conversion failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	ext := filepath.Ext(sourcePath)
	pdfPath := strings.TrimSuffix(sourcePath, ext) + ".pdf"
	pdf, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("soffice: reading output: %w", err)
	}
	return pdf, nil
}
