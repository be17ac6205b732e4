/**
 * Copyright 2025 Adobe. All rights reserved.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License. You may obtain a copy
 * of the License at http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under
 * the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR REPRESENTATIONS
 * OF ANY KIND, either express or implied. See the License for the specific language
 * governing permissions and limitations under the License.
 */

// Package requests is the list of the service requests, where the orders end up
package requests

import (
	"context"

	"github.com/adobe/miq-pages/lib/appliance"
	"github.com/adobe/miq-pages/lib/base"
	"github.com/adobe/miq-pages/lib/navigator"
	"github.com/adobe/miq-pages/lib/widget"
)

// MsgOrderSubmitted is shown after the catalog item is ordered
const MsgOrderSubmitted = "Order Request was Submitted"

// RequestsView is the list of the requests
type RequestsView struct {
	base.LoggedInPage
	Table widget.Table
}

// NewRequestsView creates the requests view
func NewRequestsView(a *appliance.Appliance) RequestsView {
	return RequestsView{
		LoggedInPage: base.NewLoggedInPage(a),
		Table:        widget.NewTable(a.Browser, "//div[@id='gtl_div']//table"),
	}
}

// IsDisplayed implements navigator.View
func (v RequestsView) IsDisplayed() bool {
	return v.LoggedInAsCurrentUser() &&
		v.Navigation.IsSelected("Services", "Requests") &&
		v.Title.TextOrEmpty() == "Requests"
}

// RegisterSteps adds the server "Requests" step
func RegisterSteps(n *navigator.Navigator) error {
	return navigator.Register(n, appliance.KindServer, "Requests", navigator.Step[*appliance.Server]{
		View:         func(s *appliance.Server) navigator.View { return NewRequestsView(s.Appliance()) },
		Prerequisite: navigator.ToSibling("LoggedIn"),
		Do: func(_ context.Context, _ *appliance.Server, prereq navigator.View) error {
			return prereq.(base.LoggedInPage).Navigation.Select("Services", "Requests")
		},
	})
}
