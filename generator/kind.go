/*
Copyright © 2025 Jayson Grace <jayson.e.grace@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

// Package generator turns `type:name` requests into source files rendered
// from skeletons and placed in the conventional directory for their type.
package generator

import (
	"sort"
)

// Kind is a generator type accepted by `em generate`.
type Kind string

// Primary kinds.
const (
	KindAdapter     Kind = "adapter"
	KindComponent   Kind = "component"
	KindController  Kind = "controller"
	KindHelper      Kind = "helper"
	KindInitializer Kind = "initializer"
	KindMixin       Kind = "mixin"
	KindModel       Kind = "model"
	KindRoute       Kind = "route"
	KindSerializer  Kind = "serializer"
	KindTemplate    Kind = "template"
	KindTransform   Kind = "transform"
	KindUtil        Kind = "util"
	KindView        Kind = "view"
)

// Test kinds. KindTest generates an integration test; the others generate
// unit tests for their primary kind.
const (
	KindTest            Kind = "test"
	KindAdapterTest     Kind = "adapter-test"
	KindComponentTest   Kind = "component-test"
	KindControllerTest  Kind = "controller-test"
	KindHelperTest      Kind = "helper-test"
	KindInitializerTest Kind = "initializer-test"
	KindMixinTest       Kind = "mixin-test"
	KindModelTest       Kind = "model-test"
	KindRouteTest       Kind = "route-test"
	KindSerializerTest  Kind = "serializer-test"
	KindTransformTest   Kind = "transform-test"
	KindUtilTest        Kind = "util-test"
	KindViewTest        Kind = "view-test"
)

// Injection is the policy for a destination that already exists.
type Injection int

const (
	// InjectionNone aborts the whole run when the destination exists.
	InjectionNone Injection = iota
	// InjectionSoft skips the file when it exists. Used for a route's template.
	InjectionSoft
	// InjectionComponents behaves like InjectionSoft and places the file in
	// templates/components. Used for a component's template.
	InjectionComponents
)

// IsInjection reports whether an existing destination is skipped rather than
// treated as a conflict.
func (i Injection) IsInjection() bool {
	return i != InjectionNone
}

func (i Injection) String() string {
	switch i {
	case InjectionSoft:
		return "soft"
	case InjectionComponents:
		return "components"
	default:
		return "none"
	}
}

// kindSpec describes a kind.
//
// suffix is the classified kind as it ends every module name, for example
// "Route" in "PostRoute". trim is what test kinds remove from the module
// name for __NAMESPACE__. unitOf is the primary kind a unit test belongs to.
// companion is the template policy for kinds that also emit a template.
type kindSpec struct {
	suffix    string
	trim      string
	test      bool
	unitOf    Kind
	companion Injection
}

var kinds = map[Kind]kindSpec{
	KindAdapter:     {suffix: "Adapter"},
	KindComponent:   {suffix: "Component", companion: InjectionComponents},
	KindController:  {suffix: "Controller"},
	KindHelper:      {suffix: "Helper"},
	KindInitializer: {suffix: "Initializer"},
	KindMixin:       {suffix: "Mixin"},
	KindModel:       {suffix: "Model"},
	KindRoute:       {suffix: "Route", companion: InjectionSoft},
	KindSerializer:  {suffix: "Serializer"},
	KindTemplate:    {suffix: "Template"},
	KindTransform:   {suffix: "Transform"},
	KindUtil:        {suffix: "Util"},
	KindView:        {suffix: "View"},

	KindTest:            {suffix: "Test", trim: "Test", test: true},
	KindAdapterTest:     {suffix: "AdapterTest", trim: "Test", test: true, unitOf: KindAdapter},
	KindComponentTest:   {suffix: "ComponentTest", trim: "Test", test: true, unitOf: KindComponent},
	KindControllerTest:  {suffix: "ControllerTest", trim: "Test", test: true, unitOf: KindController},
	KindHelperTest:      {suffix: "HelperTest", trim: "Test", test: true, unitOf: KindHelper},
	KindInitializerTest: {suffix: "InitializerTest", trim: "Test", test: true, unitOf: KindInitializer},
	KindMixinTest:       {suffix: "MixinTest", trim: "Test", test: true, unitOf: KindMixin},
	KindModelTest:       {suffix: "ModelTest", trim: "ModelTest", test: true, unitOf: KindModel},
	KindRouteTest:       {suffix: "RouteTest", trim: "Test", test: true, unitOf: KindRoute},
	KindSerializerTest:  {suffix: "SerializerTest", trim: "Test", test: true, unitOf: KindSerializer},
	KindTransformTest:   {suffix: "TransformTest", trim: "Test", test: true, unitOf: KindTransform},
	KindUtilTest:        {suffix: "UtilTest", trim: "Test", test: true, unitOf: KindUtil},
	KindViewTest:        {suffix: "ViewTest", trim: "Test", test: true, unitOf: KindView},
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

// IsTest reports whether k generates a test file.
func (k Kind) IsTest() bool {
	return kinds[k].test
}

// Companion returns the template policy for kinds that also emit a template,
// or InjectionNone.
func (k Kind) Companion() Injection {
	return kinds[k].companion
}

// SkeletonFile returns the skeleton path for k inside the skeleton
// filesystem.
func (k Kind) SkeletonFile() string {
	if k == KindTemplate {
		return "generators/template.hbs"
	}
	return "generators/" + string(k) + ".js"
}

// Ext returns the extension of files generated for k.
func (k Kind) Ext() string {
	if k == KindTemplate {
		return ".hbs"
	}
	return ".js"
}

// Kinds returns every valid kind: primary kinds first, then test kinds, each
// group sorted by name.
func Kinds() []Kind {
	var primary, tests []Kind
	for k, spec := range kinds {
		if spec.test {
			tests = append(tests, k)
		} else {
			primary = append(primary, k)
		}
	}
	sort.Slice(primary, func(i, j int) bool { return primary[i] < primary[j] })
	sort.Slice(tests, func(i, j int) bool { return tests[i] < tests[j] })
	return append(primary, tests...)
}
