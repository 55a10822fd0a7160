// Package namsor turns lists of personal names or proper nouns into single
// batch calls against the Namsor name-analysis API and reshapes the results.
//
// An invocation names a resource (gender, origin, country, ethnicity,
// usRaceEthnicity, indianCaste, nameParsing, nameType) and an operation of that
// resource. The Connector validates the entries, builds one request through the
// Registry, sends it with a Transport and normalizes the response:
//
//	c, err := namsor.NewConnector(namsor.ConnectorConfig{Transport: provider})
//	result, err := c.Execute(ctx, namsor.Invocation{
//		Resource:  "gender",
//		Operation: "byName",
//		Entries:   []namsor.NameEntry{{FirstName: "John", LastName: "Smith"}},
//		Simplify:  true,
//	})
//
// A batch holds between 1 and MaxBatchSize entries. Validation errors are
// returned before any network call and are never retried.
package namsor
