// Package openapiform derives form inputs from the request body schema of an
// OpenAPI 3 operation.
//
// Object properties become inputs in name order. Nested objects become
// fieldsets whose inputs are named parent[child]. Booleans map to
// checkboxes, enums to selects and the password, email and binary string
// formats to their matching controls. The x-formtable-widget extension picks
// any registered type explicitly:
//
//	body:
//	  type: string
//	  x-formtable-widget: rich_editor
//
// Pass the form's registry with WithRegistry so extension types resolve.
package openapiform
