// Package summary generates the optional executive summary paragraph
// for the forensic report. It is an enhancement: callers enable it
// explicitly, and a generation failure degrades the report to its
// table-only form rather than failing the run.
package summary

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/auditgrid/shadowmap/pkg/audit"
	"github.com/auditgrid/shadowmap/pkg/constants"
	"github.com/auditgrid/shadowmap/pkg/errors"
)

// Generator produces a stakeholder summary from an audit result.
type Generator interface {
	Generate(ctx context.Context, result *audit.Result) (string, error)
}

// Gemini generates summaries with the Gemini API.
type Gemini struct {
	apiKey string
	model  string
}

// NewGemini creates a Gemini generator. The model defaults when blank.
func NewGemini(apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.NewConfigError("summary", "API key is required", nil)
	}
	if model == "" {
		model = constants.DefaultSummaryModel
	}
	return &Gemini{apiKey: apiKey, model: model}, nil
}

// Generate produces one summary paragraph for the result.
func (g *Gemini) Generate(ctx context.Context, result *audit.Result) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  g.apiKey,
	})
	if err != nil {
		return "", errors.WrapResource("create", "client", g.model, err)
	}

	genCtx, cancel := context.WithTimeout(ctx, constants.SummaryTimeout)
	defer cancel()

	resp, err := client.Models.GenerateContent(genCtx, g.model, genai.Text(prompt(result)), nil)
	if err != nil {
		return "", errors.WrapResource("generate", "summary", g.model, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.NewResourceError("generate", "summary", g.model, nil)
	}
	return text, nil
}

// prompt renders the tallies and the top gaps into the instruction. The
// model sees numbers and names only, never raw source rows.
func prompt(result *audit.Result) string {
	var sb strings.Builder

	sb.WriteString("Write one executive summary paragraph (at most 120 words, no headings, no bullet points) ")
	sb.WriteString("for a launch-governance audit. Audience: non-technical stakeholders deciding where to ")
	sb.WriteString("follow up first. Be factual and direct.\n\n")

	fmt.Fprintf(&sb, "Reconciliation: %d tickets vs %d registry entries; %d matched, %d ticket-only, %d registry-only (%.1f%% matched).\n",
		result.Stats.TicketsIn, result.Stats.EntriesIn,
		result.Stats.Matched, result.Stats.TicketOnly, result.Stats.RegistryOnly,
		result.MatchRate())

	if len(result.PriorityGaps) > 0 {
		fmt.Fprintf(&sb, "Top priority gaps (%d total):\n", len(result.PriorityGaps))
		for i, gap := range result.PriorityGaps {
			if i == 5 {
				break
			}
			fmt.Fprintf(&sb, "- %s %q (%s)\n", gap.TicketID, gap.Title, gap.Status)
		}
	}

	if len(result.Orphans) > 0 {
		fmt.Fprintf(&sb, "Registry orphans: %d entries with no governance ticket.\n", len(result.Orphans))
	}

	if len(result.Exposure) > 0 {
		fmt.Fprintf(&sb, "Unmapped technical exposure (%d families):\n", len(result.Exposure))
		for i, fe := range result.Exposure {
			if i == 5 {
				break
			}
			fmt.Fprintf(&sb, "- %s: volume %d\n", fe.Family, fe.Volume)
		}
	}

	return sb.String()
}
