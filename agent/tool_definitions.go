package agent

import (
	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

const (
	// ai functions
	ConvertTemperature string = "convert_temperature"
	GetWeather         string = "get_weather"
	SumNumbers         string = "sum_numbers"
	GetUserInfo        string = "get_user_info"
	GenerateImage      string = "generate_image"
	ScheduleFollowup   string = "schedule_followup"
)

var ConvertTemperatureFuncDef = openai.FunctionDefinition{
	Name:        ConvertTemperature,
	Description: "Convert a temperature from Celsius to Fahrenheit",
	Parameters: &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"celsius": {
				Type:        jsonschema.Number,
				Description: "Temperature in degrees Celsius",
			},
		},
		Required: []string{
			"celsius",
		},
	},
}

var GetWeatherFuncDef = openai.FunctionDefinition{
	Name:        GetWeather,
	Description: "Get the current weather for a location",
	Parameters: &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"location": {
				Type:        jsonschema.String,
				Description: "The city to get the weather for",
			},
		},
		Required: []string{
			"location",
		},
	},
}

var SumNumbersFuncDef = openai.FunctionDefinition{
	Name:        SumNumbers,
	Description: "Add two numbers and return the sum",
	Parameters: &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"a": {
				Type:        jsonschema.Number,
				Description: "First number",
			},
			"b": {
				Type:        jsonschema.Number,
				Description: "Second number",
			},
		},
		Required: []string{
			"a",
			"b",
		},
	},
}

var GetUserInfoFuncDef = openai.FunctionDefinition{
	Name:        GetUserInfo,
	Description: "Retrieve user information for a user id",
	Parameters: &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"user_id": {
				Type:        jsonschema.Integer,
				Description: "ID of the user to look up",
			},
		},
		Required: []string{
			"user_id",
		},
	},
}

var GenerateImageFuncDef = openai.FunctionDefinition{
	Name:        GenerateImage,
	Description: "Generate an image from a prompt using DALL-E and return its URL",
	Parameters: &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"prompt": {
				Type:        jsonschema.String,
				Description: "The prompt provided by the user",
			},
		},
		Required: []string{
			"prompt",
		},
	},
}

var ScheduleFollowupFuncDef = openai.FunctionDefinition{
	Name:        ScheduleFollowup,
	Description: "Schedule a follow up query to be asked again after a delay",
	Parameters: &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"message": {
				Type:        jsonschema.String,
				Description: "The follow up message to ask the assistant later",
			},
			"delay_seconds": {
				Type:        jsonschema.Number,
				Description: "How long to wait before asking, in seconds",
			},
		},
		Required: []string{
			"message",
			"delay_seconds",
		},
	},
}
