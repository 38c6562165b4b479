package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/subhaneetshrestha/lereddit/internal/domain/models"
	"github.com/subhaneetshrestha/lereddit/internal/handler/http/middleware"
	"github.com/subhaneetshrestha/lereddit/internal/service"
)

// NewSchema builds the executable schema. Session identity travels through
// the request context: the cookie middleware attaches a CookieSession that
// register/login use to issue the cookie and me/logout use to read it.
func NewSchema(authService *service.AuthService, postService *service.PostService) (graphql.Schema, error) {
	userType := newUserType()
	postType := newPostType()
	fieldErrorType := newFieldErrorType()
	authResultType := newAuthResultType(userType, fieldErrorType)
	registerInputType := newRegisterInputType()

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type: userType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					sessionID := ""
					if session := middleware.SessionFrom(p.Context); session != nil {
						sessionID = session.ID()
					}
					user, err := authService.CurrentUser(p.Context, sessionID)
					if err != nil {
						return nil, err
					}
					if user == nil {
						return nil, nil
					}
					return user, nil
				},
			},
			"posts": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(postType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					posts, err := postService.List(p.Context)
					if err != nil {
						return nil, err
					}
					if posts == nil {
						posts = []*models.Post{}
					}
					return posts, nil
				},
			},
			"post": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					post, err := postService.Get(p.Context, intArg(p.Args, "id"))
					if err != nil {
						return nil, err
					}
					if post == nil {
						return nil, nil
					}
					return post, nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"register": &graphql.Field{
				Type: graphql.NewNonNull(authResultType),
				Args: graphql.FieldConfigArgument{
					"options": &graphql.ArgumentConfig{Type: graphql.NewNonNull(registerInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					options, _ := p.Args["options"].(map[string]interface{})
					input := models.RegisterInput{
						Username: stringArg(options, "username"),
						Email:    stringArg(options, "email"),
						Phone:    stringArg(options, "phone"),
						Password: stringArg(options, "password"),
					}

					result, sessionID, err := authService.Register(p.Context, input)
					if err != nil {
						return nil, err
					}
					if sessionID != "" {
						if session := middleware.SessionFrom(p.Context); session != nil {
							session.Issue(sessionID)
						}
					}
					return result, nil
				},
			},
			"login": &graphql.Field{
				Type: graphql.NewNonNull(authResultType),
				Args: graphql.FieldConfigArgument{
					"uniqueCred": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					result, sessionID, err := authService.Login(p.Context,
						stringArg(p.Args, "uniqueCred"), stringArg(p.Args, "password"))
					if err != nil {
						return nil, err
					}
					if sessionID != "" {
						if session := middleware.SessionFrom(p.Context); session != nil {
							session.Issue(sessionID)
						}
					}
					return result, nil
				},
			},
			"logout": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					session := middleware.SessionFrom(p.Context)
					sessionID := ""
					if session != nil {
						sessionID = session.ID()
					}

					destroyed := authService.Logout(p.Context, sessionID)
					if session != nil {
						session.Clear()
					}
					return destroyed, nil
				},
			},
			"createPost": &graphql.Field{
				Type: graphql.NewNonNull(postType),
				Args: graphql.FieldConfigArgument{
					"title": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return postService.Create(p.Context, stringArg(p.Args, "title"))
				},
			},
			"updatePost": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"title": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					post, err := postService.UpdateTitle(p.Context, intArg(p.Args, "id"), stringArg(p.Args, "title"))
					if err != nil {
						return nil, err
					}
					if post == nil {
						return nil, nil
					}
					return post, nil
				},
			},
			"deletePost": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return postService.Delete(p.Context, intArg(p.Args, "id")), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}
