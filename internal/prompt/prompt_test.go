package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildWrapsContent(t *testing.T) {
	content := "2025-03-17.md\n- corrigi o login\n\n2025-03-18.md\n- feature de exportação"
	p := Build(content)

	assert.True(t, strings.HasPrefix(p, "Analise os seguintes relatórios diários"))
	assert.Contains(t, p, "1. Atividades na semana")
	assert.Contains(t, p, "2. Resolução de bugs")
	assert.Contains(t, p, "3. Trabalhando em features")
	assert.Contains(t, p, "Replique o formato de fala dos relatórios.")

	idx := strings.Index(p, ReportsMarker)
	assert.Greater(t, idx, 0)
	assert.Contains(t, p[idx:], content)
}

func TestBuildEmptyContent(t *testing.T) {
	p := Build("")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(p), ReportsMarker))
}

func TestBuildIsPure(t *testing.T) {
	assert.Equal(t, Build("x"), Build("x"))
}
