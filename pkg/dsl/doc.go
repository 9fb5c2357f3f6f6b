/*
Package dsl provides a Go DSL for programmatically constructing claim form configuration.

It builds the same keys a property file would hold (field lists, rules,
fold-out dependencies, question templates) through a fluent builder, which is
useful for tests, embedded forms and IDE autocompletion.

Example usage:

	package main

	import (
		"github.com/aretw0/claimform"
		"github.com/aretw0/claimform/pkg/dsl"
	)

	func main() {
		b := dsl.New()

		b.Form("about-you").
			Field("surname").Label("Last name").Mandatory().MaxLength(35).
			Field("hasPartner").Mandatory().
			Field("partnerName").DependsOn("hasPartner", "yes").Mandatory()

		b.Question("hasPartner.text", "Have you had a partner since {0}?",
			"${cads:dateOffsetFromCurrent('d MMMM yyyy', '-3 months')}")

		messages, err := b.Build()
		if err != nil {
			panic(err)
		}

		// The result is a ports.MessageSource
		eng, _ := claimform.New(claimform.WithMessages(messages))
		_ = eng
	}
*/
package dsl
