package agent

import (
	"context"
	"fmt"
	"log"

	openai "github.com/sashabaranov/go-openai"
)

// GetImgUrl generates an image for the prompt and returns its URL
func GetImgUrl(ctx context.Context, prompt string, client AgentClient) (string, error) {
	log.Println("generating image from prompt: ", prompt)

	imgReq := openai.ImageRequest{
		Prompt:         prompt,
		Size:           openai.CreateImageSize256x256,
		ResponseFormat: openai.CreateImageResponseFormatURL,
		N:              1,
	}

	resp, err := client.CreateImage(ctx, imgReq)
	if err != nil {
		return "", fmt.Errorf("unable to get image url: %s", err)
	}

	return resp.Data[0].URL, nil
}
