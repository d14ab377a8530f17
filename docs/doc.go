// Package docs provides generated OpenAPI documentation.
//
// Briefly API
//
//	@title			Briefly API
//	@version		1.0
//	@description	Text summarization API backed by OpenAI chat completions.
//
//	@contact.name	API Support
//	@contact.url	https://github.com/brieflyhq/briefly
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:3000
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/briefly/serve.go -o . --parseDependency --parseInternal
