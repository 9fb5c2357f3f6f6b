/*
Package claimform interprets the configuration-driven rules of a benefit claim form.

Three tables drive everything: a message source holding field lists, fold-out
dependencies, validation rules and question templates; mapping lists that place
claim values at paths of an XML document; and the expression language used to
fill question arguments.

# Key Features

  - Validation: every field of a form is checked against its configured rules, in
    field order, skipping fields hidden behind an unfulfilled fold-out dependency.
  - Expressions: "${cads:...}" calls and plain variables, with aliases, nested
    calls and cycle detection.
  - Assembly: a deterministic XML document built from claim values and an ordered
    mapping list, including repeating sections and question labels.

# Usage

	source, err := properties.LoadFiles("messages.properties")
	if err != nil {
		log.Fatal(err)
	}

	eng, err := claimform.New(
		claimform.WithMessages(source),
		claimform.WithMappingLoader(mappingfile.NewLoader("./mappings")),
	)
	if err != nil {
		log.Fatal(err)
	}

	summary, err := eng.Validate("about-you", request, existing)
	if err != nil {
		log.Fatal(err) // configuration problem
	}
	for _, e := range summary.FormErrors() {
		fmt.Println(e)
	}

	doc, err := eng.Assemble(claim, "claim")
	if err != nil {
		log.Fatal(err)
	}
	out, err := doc.Render(true, true)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out)
*/
package claimform
