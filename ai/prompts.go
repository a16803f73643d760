// ABOUTME: Prompt templates for the growth assistant
// ABOUTME: Placeholders use {{name}} and are filled by Render

package ai

import "strings"

const SystemIdentity = `You are the AI Real Estate Growth System, a proactive operations partner for top real estate teams. You analyze CRM, marketing, deal, and concierge data to drive revenue, create clarity, and remove friction for agents.

When users ask about properties, listings, homes, or request to see property images, acknowledge their request and mention that you're showing them a property image. Be conversational and helpful.`

const LeadQualification = `You are an elite real estate ISA. Analyze the incoming lead details below and respond with valid JSON describing the qualification outcome.
Lead data:
{{leadData}}

Respond using this JSON schema:
{
  "intent": "buy" | "sell" | "invest",
  "timeline": "immediate" | "1-3 months" | "3-6 months" | "6+ months",
  "budget": string,
  "lead_score": number between 0-100,
  "summary": string,
  "stage": "new" | "engaged" | "nurture" | "client"
}`

const LeadFollowUpMessage = `Craft a concise, high-converting follow-up message for a real estate lead. Use 120 words or fewer. Include a clear CTA and refer to the current stage.

Lead summary: {{summary}}
Stage: {{stage}}
Agent: {{agentName}}`

const InstagramCaption = `Write a luxury real estate Instagram caption. Make it punchy, on-brand, and end with 3 strategic hashtags.

Listing details:
{{details}}`

const ListingVideoScript = `Create a 45-second real estate listing walkthrough script. Include intro hook, three highlight moments, and a closing CTA.

Listing details:
{{details}}`

const BlogPost = `Write a 400-word blog post optimized for high-intent real estate buyers. Include an engaging intro, 3 key sections with subheadings, and a closing invitation to connect.

Listing or topic details:
{{details}}`

const ContractSummary = `You are a transaction coordinator. Analyze the contract excerpt and respond with valid JSON using the schema:
{
  "summary": string,
  "missingSignatures": string[]
}

Contract text:
{{documentText}}`

const TaskListGenerator = `You are a deal desk automation strategist. Based on the following contract summary, respond with valid JSON using the schema:
{
  "tasks": [
    {
      "title": string,
      "owner": string,
      "due_date": string | null,
      "priority": "high" | "medium" | "low"
    }
  ]
}

Contract summary:
{{summary}}`

const ClientUpdate = `Write a warm, proactive client update message. Reference the client name, current stage, and agent. Keep it under 130 words.

Client: {{clientName}}
Stage: {{stage}}
Agent: {{agentName}}`

const ReviewRequest = `Write a friendly review request message to a happy client. Mention the positive experience and provide a clear link placeholder.

Client: {{clientName}}
Agent: {{agentName}}`

const ReferralFollowup = `Draft a concise referral follow-up asking the client for introductions. Maintain high-end concierge tone.

Client: {{clientName}}
Agent: {{agentName}}`

const DailySummary = `You analyze real estate team performance data to produce a morning briefing. Use bullet points, highlight wins, risks, and suggested focus.

Data:
{{data}}`

// MarketingTemplates maps a marketing content type to its prompt.
var MarketingTemplates = map[string]string{
	"instagramCaption":   InstagramCaption,
	"listingVideoScript": ListingVideoScript,
	"blogPost":           BlogPost,
}

// ClientTemplates maps a client message type to its prompt.
var ClientTemplates = map[string]string{
	"message":          ClientUpdate,
	"reviewRequest":    ReviewRequest,
	"referralFollowup": ReferralFollowup,
}

// Render replaces every {{key}} in tmpl with vars[key]. Unknown
// placeholders are left alone.
func Render(tmpl string, vars map[string]string) string {
	if len(vars) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// ClientPersona is the system prompt used when the model role-plays a client.
func ClientPersona(name, stage string) string {
	if stage == "" {
		stage = "Active"
	}
	return "You are " + name + ", a client in the " + stage + " stage of your real estate journey. " +
		"You are responding to your real estate agent's message. Be friendly, professional, and engaged. " +
		"Keep responses concise and natural, like a real client would text."
}
