package cli

import "arcadia-quote-service/internal/domain"

// sampleContent provides a minimal English content tree for running
// without a database; swap the loader with the Postgres-backed one in
// production.
func sampleContent() map[string]domain.QuoteContent {
	return map[string]domain.QuoteContent{
		"en": {
			Language: "en",
			CompanySizes: []domain.CompanySize{
				{ID: "startup", Label: "Startup", Description: "Up to 50 employees", Icon: "rocket", Multiplier: 1.0},
				{ID: "midmarket", Label: "Mid-market", Description: "50-500 employees", Icon: "building", Multiplier: 1.2},
				{ID: "enterprise", Label: "Enterprise", Description: "500+ employees", Icon: "globe", Multiplier: 1.5},
			},
			Questions: []domain.Question{
				{
					ID:     "use-case",
					Stage:  "Agent Platform Setup",
					Prompt: "What should your AI agents handle first?",
					Options: []domain.Option{
						{ID: "support", Label: "Customer support", Echo: "We want agents for customer support", BasePrice: 4000, Hours: 60},
						{ID: "sales", Label: "Sales assistance", Echo: "We want agents helping our sales team", BasePrice: 5000, Hours: 70},
						{ID: "operations", Label: "Internal operations", Echo: "We want agents for internal operations", BasePrice: 4500, Hours: 65},
					},
				},
				{
					ID:       "knowledge",
					Stage:    "Knowledge Integration",
					Prompt:   "Where does the knowledge your agents need live today?",
					FollowUp: "Which of these fits best?",
					Options: []domain.Option{
						{
							ID: "documents", Label: "Documents and wikis", Echo: "Mostly documents and wikis",
							BasePrice: 3000, Hours: 45,
							SubOptions: []domain.Option{
								{ID: "documents-few", Label: "A handful of sources", Echo: "Just a handful of sources", BasePrice: 2500, Hours: 35},
								{ID: "documents-many", Label: "Many scattered sources", Echo: "Many scattered sources", BasePrice: 4000, Hours: 55},
							},
						},
						{ID: "crm", Label: "CRM and ticketing systems", Echo: "Inside our CRM and ticketing systems", BasePrice: 3500, Hours: 50},
					},
				},
				{
					ID:                 "workflows",
					Stage:              "Workflow Automation",
					Prompt:             "How complex are the workflows the agents should automate?",
					FollowUp:           "How would you rate that complexity?",
					RequiresMultiplier: true,
					Options: []domain.Option{
						{ID: "workflows-readonly", Label: "Answering questions only", Echo: "Answering questions is enough", BasePrice: 2000, Hours: 30},
						{ID: "workflows-actions", Label: "Taking actions in our systems", Echo: "They should take actions in our systems", BasePrice: 4000, Hours: 60},
					},
					Multipliers: []domain.ComplexityMultiplier{
						{ID: "complexity-low", Label: "Low complexity", Description: "A few linear steps", Echo: "Fairly simple flows", Value: 1.0},
						{ID: "complexity-medium", Label: "Medium complexity", Description: "Branching with approvals", Echo: "Some branching and approvals", Value: 1.3},
						{ID: "complexity-high", Label: "High complexity", Description: "Cross-system orchestration", Echo: "Deep cross-system orchestration", Value: 1.6},
					},
				},
				{
					ID:     "channels",
					Stage:  "Channel Deployment",
					Prompt: "Where should people reach your agents?",
					Options: []domain.Option{
						{ID: "web", Label: "Website chat", Echo: "On our website", BasePrice: 1500, Hours: 25},
						{ID: "messaging", Label: "Messaging platforms", Echo: "On messaging platforms too", BasePrice: 2500, Hours: 40},
						{ID: "everywhere", Label: "Web, messaging and voice", Echo: "Everywhere, including voice", BasePrice: 4000, Hours: 60},
					},
				},
				{
					ID:                 "compliance",
					Stage:              "Security & Compliance",
					Prompt:             "What are your security and compliance requirements?",
					FollowUp:           "How strict is the bar?",
					RequiresMultiplier: true,
					Options: []domain.Option{
						{ID: "compliance-standard", Label: "Standard practices", Echo: "Standard security practices", BasePrice: 1500, Hours: 25},
						{ID: "compliance-regulated", Label: "Regulated industry", Echo: "We are in a regulated industry", BasePrice: 3000, Hours: 45},
					},
					Multipliers: []domain.ComplexityMultiplier{
						{ID: "audit-internal", Label: "Internal review", Echo: "Internal review is enough", Value: 1.0},
						{ID: "audit-external", Label: "External audits", Echo: "We need external audits", Value: 1.4},
					},
				},
				{
					ID:     "rollout",
					Stage:  "Launch & Handover",
					Prompt: "How do you want to roll out and run the agents?",
					Options: []domain.Option{
						{ID: "rollout-pilot", Label: "Pilot first", Echo: "A pilot with one team first", BasePrice: 1000, Hours: 20},
						{ID: "rollout-full", Label: "Full rollout with training", Echo: "Full rollout with training for our teams", BasePrice: 2500, Hours: 40},
					},
				},
			},
			UI: map[string]string{
				"welcome":           "Let's build your quote. First, how big is your organization?",
				"companySizePrompt": "Slide to pick your organization size",
				"completeMessage":   "That's everything. Here is your estimate.",
			},
			Explanations: map[string]string{
				"documents":          "Agents index your documents and wikis so answers cite your own material.",
				"crm":                "Agents read and write records in your CRM and ticketing tools.",
				"workflows-actions":  "Action-taking agents execute steps in your systems with guardrails and audit logs.",
				"complexity-high":    "Cross-system orchestration spans several tools with compensation on failure.",
				"audit-external":     "External audits add evidence collection and third-party review cycles.",
				"rollout-full":       "Full rollout covers every team, with training sessions and a handover runbook.",
			},
		},
	}
}
