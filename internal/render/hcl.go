// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/staranto/curl2py/internal/request"
)

// HCL renders req as a single request block labelled with the method.
func HCL(req *request.Request) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body().AppendNewBlock("request", []string{req.Method}).Body()

	body.SetAttributeValue("url", cty.StringVal(req.URL))
	if req.HasData {
		body.SetAttributeValue("data", cty.StringVal(req.Data))
	}
	body.SetAttributeValue("headers", mapValue(req.Headers))
	body.SetAttributeValue("cookies", mapValue(req.Cookies))

	if req.Auth != nil {
		body.SetAttributeValue("auth", cty.ObjectVal(map[string]cty.Value{
			"username": cty.StringVal(req.Auth.Username),
			"password": cty.StringVal(req.Auth.Password),
		}))
	}

	body.SetAttributeValue("proxies", mapValue(req.Proxies))
	body.SetAttributeValue("insecure", cty.BoolVal(req.Insecure))
	body.SetAttributeValue("compressed", cty.BoolVal(req.Compressed))

	return hclwrite.Format(f.Bytes())
}

func mapValue(fields request.Fields) cty.Value {
	if fields.Len() == 0 {
		return cty.MapValEmpty(cty.String)
	}
	m := make(map[string]cty.Value, fields.Len())
	for _, field := range fields {
		m[field.Name] = cty.StringVal(field.Value)
	}
	return cty.MapVal(m)
}
