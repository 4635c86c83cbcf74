// Package ledger lê o livro de vendas do sistema de arquivos
package ledger

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
)

// FileSource carrega o livro de vendas de um arquivo
type FileSource struct {
	fs   afero.Fs
	path string
}

// NewFileSource cria uma fonte sobre o sistema de arquivos do sistema operacional
func NewFileSource(path string) *FileSource {
	return NewFileSourceWithFs(afero.NewOsFs(), path)
}

// NewFileSourceWithFs permite informar outro sistema de arquivos (ex.: memória nos testes)
func NewFileSourceWithFs(fs afero.Fs, path string) *FileSource {
	return &FileSource{
		fs:   fs,
		path: path,
	}
}

// Name identifica a origem do relatório
func (s *FileSource) Name() string {
	return s.path
}

// Load lê o arquivo completo
func (s *FileSource) Load(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return "", fmt.Errorf("erro ao ler livro de vendas %s: %w", s.path, err)
	}

	return string(data), nil
}
