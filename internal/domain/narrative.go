package domain

// NarrativeRequest é o pedido de explicação enviado ao gerador de narrativa.
// O gerador recebe apenas a janela de métricas mensais, nunca assinaturas ou eventos.
type NarrativeRequest struct {
	Column       string `json:"column"`
	WindowMonths int    `json:"window_months"` // 0 = histórico completo
	Question     string `json:"question,omitempty"`
}

// Narrative é o texto gerado junto com o prompt usado
type Narrative struct {
	Label  string `json:"label,omitempty"`
	Column string `json:"column,omitempty"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Text   string `json:"text"`
	Prompt string `json:"prompt"`
	Cached bool   `json:"cached"`
}
