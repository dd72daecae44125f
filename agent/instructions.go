package agent

// The instructions and prompt templates used by the samples
const (
	AGENT_INSTRUCTIONS = `You are a helpful assistant`

	SCHEDULED_QUERY_INSTRUCTIONS = `You are following up on an earlier conversation after a scheduled delay.
	Briefly restate what the follow up is about before answering.
	`

	DAILY_DIGEST_INSTRUCTIONS = `You are generating a short daily digest message.
	Summarize the prompt content in a few sentences. If usage numbers are included, mention them.
	`

	REVIEWER_INSTRUCTIONS = `Your responsibility is to review and identify how to improve user provided content.
	If the user has provided input or direction for content already provided, specify how to address this input.
	Never directly perform the correction or provide an example.
	Once the content has been updated in a subsequent response, review it again until it is satisfactory.

	RULES:
	- Only identify suggestions that are specific and actionable.
	- Verify previous suggestions have been addressed.
	- Never repeat previous suggestions.
	`

	WRITER_INSTRUCTIONS = `Your sole responsibility is to rewrite content according to review suggestions.
	- Always apply all review directions.
	- Always revise the content in its entirety without explanation.
	- Never address the user.
	`

	// %s placeholders: participant list, last message
	SELECTION_PROMPT_FORMAT = `Examine the provided RESPONSE and choose the next participant.
	State only the name of the chosen participant without explanation.
	Never choose the participant named in the RESPONSE.

	Choose only from these participants:
	%s

	Rules:
	- If RESPONSE is user input, it is the first participant's turn.
	- Otherwise it is the turn of a participant other than the one named in the RESPONSE.

	RESPONSE:
	%s
	`

	// %s placeholders: termination keyword, last message
	TERMINATION_PROMPT_FORMAT = `Examine the RESPONSE and determine whether the content has been deemed satisfactory.
	If the content is satisfactory, respond with a single word without explanation: %s.
	If specific suggestions are being provided, it is not satisfactory.
	If no correction is suggested, it is satisfactory.

	RESPONSE:
	%s
	`
)
