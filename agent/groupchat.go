package agent

import (
	"context"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	REVIEWER_NAME       = "Reviewer"
	WRITER_NAME         = "Writer"
	TERMINATION_KEYWORD = "yes"
)

type GroupAgent struct {
	Name         string
	Instructions string
}

// GroupMessage is one turn of the transcript. AgentName is empty for user
// input.
type GroupMessage struct {
	AgentName string
	Content   string
}

// GroupChat runs a turn-based conversation between named agents. Which
// agent speaks next is decided by a selection prompt over the last message,
// and the chat ends when the termination agent's reply is judged
// satisfactory or the iteration cap is reached.
type GroupChat struct {
	client  AgentClient
	config  *Config
	agents  []GroupAgent
	history []GroupMessage
	// only replies from this agent are checked for termination
	terminationAgent   string
	terminationKeyword string
}

func NewGroupChat(client AgentClient, config *Config, agents []GroupAgent) *GroupChat {
	terminationAgent := ""
	if len(agents) > 0 {
		terminationAgent = agents[0].Name
	}
	return &GroupChat{
		client:             client,
		config:             config,
		agents:             agents,
		terminationAgent:   terminationAgent,
		terminationKeyword: TERMINATION_KEYWORD,
	}
}

// NewReviewerWriterChat builds the sample reviewer/writer pairing. The
// reviewer critiques, the writer revises, and the chat ends once the
// reviewer has no further suggestions.
func NewReviewerWriterChat(client AgentClient, config *Config) *GroupChat {
	return NewGroupChat(client, config, []GroupAgent{
		{Name: REVIEWER_NAME, Instructions: REVIEWER_INSTRUCTIONS},
		{Name: WRITER_NAME, Instructions: WRITER_INSTRUCTIONS},
	})
}

// Submit appends user content to the conversation
func (g *GroupChat) Submit(content string) {
	g.history = append(g.history, GroupMessage{Content: content})
}

func (g *GroupChat) Reset() {
	g.history = nil
}

func (g *GroupChat) History() []GroupMessage {
	return g.history
}

// Invoke runs agent turns until the termination agent approves or the
// iteration cap is reached, returning the messages produced by this call.
func (g *GroupChat) Invoke(ctx context.Context) ([]GroupMessage, error) {
	if len(g.agents) < 2 {
		return nil, fmt.Errorf("group chat needs at least two agents, got %d", len(g.agents))
	}

	maxIterations := g.config.MaxChatIterations
	if maxIterations <= 0 {
		maxIterations = 10
	}

	start := len(g.history)
	for i := 0; i < maxIterations; i++ {
		speaker, err := g.selectNextAgent(ctx)
		if err != nil {
			return g.history[start:], err
		}
		log.Println("next participant: ", speaker.Name)

		reply, err := g.agentReply(ctx, speaker)
		if err != nil {
			return g.history[start:], err
		}
		g.history = append(g.history, GroupMessage{
			AgentName: speaker.Name,
			Content:   reply,
		})

		if speaker.Name != g.terminationAgent {
			continue
		}
		done, err := g.shouldTerminate(ctx, reply)
		if err != nil {
			return g.history[start:], err
		}
		if done {
			break
		}
	}

	return g.history[start:], nil
}

// selectNextAgent asks the model who speaks next based on the last message.
// User input always goes to the first agent; an unparseable selection falls
// back to simple rotation.
func (g *GroupChat) selectNextAgent(ctx context.Context) (GroupAgent, error) {
	last := g.lastMessage()
	if last.AgentName == "" {
		return g.agents[0], nil
	}

	var participants []string
	for _, agent := range g.agents {
		participants = append(participants, "- "+agent.Name)
	}

	prompt := fmt.Sprintf(
		SELECTION_PROMPT_FORMAT,
		strings.Join(participants, "\n"),
		g.renderMessage(last),
	)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.config.DefaultModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return GroupAgent{}, err
	}

	choice := strings.TrimSpace(resp.Choices[0].Message.Content)
	for _, agent := range g.agents {
		if strings.EqualFold(choice, agent.Name) && agent.Name != last.AgentName {
			return agent, nil
		}
	}

	log.Println("could not parse selection, rotating: ", choice)
	return g.nextInRotation(last.AgentName), nil
}

func (g *GroupChat) nextInRotation(lastSpeaker string) GroupAgent {
	for i, agent := range g.agents {
		if agent.Name == lastSpeaker {
			return g.agents[(i+1)%len(g.agents)]
		}
	}
	return g.agents[0]
}

// agentReply asks the speaker to respond given the truncated history. The
// speaker's own prior turns map to the assistant role, everything else to
// the user role.
func (g *GroupChat) agentReply(ctx context.Context, speaker GroupAgent) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: speaker.Instructions},
	}

	for _, message := range g.truncatedHistory() {
		role := openai.ChatMessageRoleUser
		if message.AgentName == speaker.Name {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: g.renderMessage(message),
		})
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    g.config.DefaultModel,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}

	return resp.Choices[0].Message.Content, nil
}

func (g *GroupChat) shouldTerminate(ctx context.Context, reply string) (bool, error) {
	prompt := fmt.Sprintf(TERMINATION_PROMPT_FORMAT, g.terminationKeyword, reply)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.config.DefaultModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return false, err
	}

	verdict := strings.ToLower(resp.Choices[0].Message.Content)
	return strings.Contains(verdict, g.terminationKeyword), nil
}

// truncatedHistory keeps the newest messages to bound token usage
func (g *GroupChat) truncatedHistory() []GroupMessage {
	target := g.config.HistoryTargetCount
	if target <= 0 || len(g.history) <= target {
		return g.history
	}
	return g.history[len(g.history)-target:]
}

func (g *GroupChat) renderMessage(message GroupMessage) string {
	if message.AgentName == "" {
		return message.Content
	}
	return message.AgentName + ": " + message.Content
}

func (g *GroupChat) lastMessage() GroupMessage {
	if len(g.history) == 0 {
		return GroupMessage{}
	}
	return g.history[len(g.history)-1]
}
