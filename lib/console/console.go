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

// Package console puts together the appliance and all the page object steps
package console

import (
	"errors"

	"github.com/adobe/miq-pages/lib/appliance"
	"github.com/adobe/miq-pages/lib/base"
	"github.com/adobe/miq-pages/lib/browser"
	"github.com/adobe/miq-pages/lib/cloud/flavor"
	"github.com/adobe/miq-pages/lib/cloud/provider"
	"github.com/adobe/miq-pages/lib/config"
	"github.com/adobe/miq-pages/lib/genericobject"
	"github.com/adobe/miq-pages/lib/journal"
	"github.com/adobe/miq-pages/lib/log"
	"github.com/adobe/miq-pages/lib/services/catalogs"
	"github.com/adobe/miq-pages/lib/services/myservice"
	"github.com/adobe/miq-pages/lib/services/requests"
)

// Console is the appliance with every known page registered
type Console struct {
	*appliance.Appliance
}

// New creates the appliance and registers the navigation steps, journal could be nil
func New(cfg *config.Config, b browser.Driver, j *journal.Journal) (*Console, error) {
	a, err := appliance.New(cfg, b, j)
	if err != nil {
		return nil, err
	}
	if err := RegisterSteps(a); err != nil {
		return nil, err
	}
	log.WithFunc("console", "New").Debug("Console created", "url", cfg.Appliance.URL,
		"version", a.Version.String(), "kinds", a.Nav.Kinds())
	return &Console{Appliance: a}, nil
}

// RegisterSteps registers the steps of all the pages in the appliance navigator
func RegisterSteps(a *appliance.Appliance) error {
	n := a.Nav
	return errors.Join(
		base.RegisterSteps(n),
		requests.RegisterSteps(n),
		provider.RegisterSteps(n),
		flavor.RegisterSteps(n),
		genericobject.RegisterSteps(n),
		myservice.RegisterSteps(n),
		catalogs.RegisterSteps(n),
	)
}

// Providers returns the cloud providers collection
func (c *Console) Providers() *provider.Collection {
	return provider.NewCollection(c.Appliance)
}

// Flavors returns the flavors collection
func (c *Console) Flavors() *flavor.Collection {
	return flavor.NewCollection(c.Appliance)
}

// GenericObjectDefinitions returns the generic object classes collection
func (c *Console) GenericObjectDefinitions() *genericobject.DefinitionCollection {
	return genericobject.NewDefinitionCollection(c.Appliance)
}

// MyService returns the provisioned service by name
func (c *Console) MyService(name string) *myservice.MyService {
	return myservice.New(c.Appliance, name)
}

// CatalogItem returns the item of the service catalog
func (c *Console) CatalogItem(catalog, name string) *catalogs.Item {
	return catalogs.NewItem(c.Appliance, catalog, name)
}
