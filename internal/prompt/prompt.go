package prompt

import "strings"

// SystemInstruction is handed to the provider at adapter construction.
const SystemInstruction = "You are a helpful assistant that summarizes weekly reports in Portuguese."

// ReportsMarker introduces the aggregated reports inside the prompt.
const ReportsMarker = "Relatórios:"

const template = `Analise os seguintes relatórios diários e gere um resumo pequeno e simplificado:
1. Atividades na semana
2. Resolução de bugs
3. Trabalhando em features

Seja claro e direto, utilize pontos para destacar as principais informações importantes.
Replique o formato de fala dos relatórios.

` + ReportsMarker + `

`

// Build wraps the aggregated reports in the summarization instructions.
func Build(content string) string {
	var sb strings.Builder
	sb.Grow(len(template) + len(content) + 1)
	sb.WriteString(template)
	sb.WriteString(content)
	sb.WriteString("\n")
	return sb.String()
}
