// Package tmdb provides lazily loaded wrappers around The Movie Database API.
//
// An entity (Movie, Show, Season, Episode, Person, Company, Credit, List,
// Account) is created from its identifier alone, or from partial data such as
// a search result. Reading a field that is not cached yet performs the one
// request that populates it; later reads are free. Every accessor returns a
// copy, so callers cannot change what an entity holds.
//
// # Usage
//
//	t := transport.NewClient(apiKey, logger, transport.WithLanguage("en-US"))
//	client := tmdb.NewClient(t, logger)
//
//	movie, err := client.Movie(550)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// one request fetches details, credits, images, videos and translations
//	title, err := movie.Title(ctx)
//	fmt.Println(title["default"])
//
//	cast, err := movie.Cast(ctx)
//	for _, role := range cast {
//		name, _ := role.Person.Name(ctx)
//		character, _ := role.Credit.Character(ctx)
//		fmt.Println(name, "as", character)
//	}
//
// # Resolution
//
// Most entities have one bulk resolver that fetches the details with every
// secondary resource appended. Company is the exception: its alternative
// names and logos have dedicated endpoints. A List is refetched after an
// Account changes it. Explicit FetchX methods force a specific endpoint and
// return its payload while updating the cache.
//
// Paginated resources are returned as *Results, which fetch the next page
// only when Next runs past the buffered one:
//
//	similar := movie.Similar(ctx)
//	for similar.Next() {
//		fmt.Println(similar.Value().ID())
//	}
//	if err := similar.Err(); err != nil {
//		...
//	}
//
// # Error Handling
//
//   - *ConstructionError (ErrConstruction): an identifying field is missing or invalid
//   - *SessionError (ErrNoSession): an Account operation ran before login
//   - *TokenError (ErrNoToken): a login step ran without a usable request token
//   - *ShapeError (ErrUnexpectedShape): a response lacked a field an accessor needs
//   - *transport.APIError: the API answered with a non-2xx status
//
// Fields the API documents as nullable read as their zero value.
package tmdb
