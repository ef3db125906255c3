// Package formspec declares forms in YAML and applies them to a form.Form.
//
//	id: settings
//	header: General
//	inputs:
//	  - type: text
//	    name: blogname
//	    required: true
//	  - type: fieldset
//	    name: mail
//	    legend: Mail
//	    inputs:
//	      - type: email
//	        name: admin_email
//
// Inputs without a label get one derived from their name.
package formspec
