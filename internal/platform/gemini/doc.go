// Package gemini provides an implementation of the generation interfaces
// backed by Google's Gemini API.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the application's interview logic to the external Gemini service
// without exposing the details of the SDK to the core application.
//
// Key components:
//
// 1. ChatClient:
//   - Implements generation.Chat over the google.golang.org/genai chat API
//   - Applies the sampling configuration and safety settings
//   - Translates SDK errors into generation.UpstreamError so the request
//     gate can classify them by HTTP status
//
// 2. Prompt Management:
//   - Question and feedback prompts are embedded text templates
//   - Job details and answers are substituted at request time
//
// 3. Generator:
//   - Implements generation.Generator
//   - Sends prompts through a generation.Chat (normally the request gate)
//   - Recovers question records with the normalize package and decodes
//     feedback objects from the model's JSON reply
package gemini
