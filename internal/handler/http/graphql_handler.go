package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	"go.uber.org/zap"
)

// GraphQLHandler executes GraphQL requests against the schema. Resolver
// failures surface as GraphQL errors in the response body; the HTTP status
// stays 200 per GraphQL-over-HTTP convention.
type GraphQLHandler struct {
	schema graphql.Schema
	logger *zap.Logger
}

// NewGraphQLHandler creates a new GraphQLHandler.
func NewGraphQLHandler(schema graphql.Schema, logger *zap.Logger) *GraphQLHandler {
	return &GraphQLHandler{schema: schema, logger: logger}
}

type graphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Serve handles POST /graphql.
func (h *GraphQLHandler) Serve(c *gin.Context) {
	var req graphQLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": []gqlerrors.FormattedError{{Message: "invalid request body"}},
		})
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        c.Request.Context(),
	})

	if result.HasErrors() {
		for _, gqlErr := range result.Errors {
			h.logger.Warn("GraphQL error",
				zap.String("message", gqlErr.Message),
				zap.String("operation", req.OperationName),
			)
		}
	}

	c.JSON(http.StatusOK, result)
}
