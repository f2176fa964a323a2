// Package assembler builds an exploded web application directory.
//
// A run walks a fixed sequence of states:
//
//	Initialize
//	PlaceDeclaredResources
//	PlacePrimarySource
//	PlaceWebDescriptor
//	PlaceContainerConfig
//	PlaceClasses
//	ClassifyAndPlaceDependencies
//	OverlayNestedWars
//
// The first failing state aborts the run and nothing written so far is
// removed. Nested archives are overlaid last so they can add to the output
// but never replace what the project itself provides. Every copy is
// freshness aware, which makes a repeated run over unchanged inputs write
// nothing.
package assembler
