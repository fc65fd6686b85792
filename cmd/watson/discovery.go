package main

import (
	"github.com/broady/watson"
	"github.com/broady/watson/discovery"
)

type DiscoveryCmd struct {
	Environments DiscoveryEnvironmentsCmd `cmd:"" help:"List environments."`
	Collections  DiscoveryCollectionsCmd  `cmd:"" help:"List the collections of an environment."`
	Query        DiscoveryQueryCmd        `cmd:"" help:"Query a collection."`
}

type DiscoveryEnvironmentsCmd struct {
	Name string `help:"Only list environments with this name."`
}

func (c *DiscoveryEnvironmentsCmd) Run(g *Globals) error {
	d, err := g.discovery()
	if err != nil {
		return err
	}
	envs, _, err := d.ListEnvironments(g.ctx, &discovery.ListEnvironmentsOptions{Name: c.Name})
	if err != nil {
		return err
	}
	return g.print(envs)
}

type DiscoveryCollectionsCmd struct {
	EnvironmentID string `arg:"" name:"environment-id"`
	Name          string `help:"Only list collections with this name."`
}

func (c *DiscoveryCollectionsCmd) Run(g *Globals) error {
	d, err := g.discovery()
	if err != nil {
		return err
	}
	cols, _, err := d.ListCollections(g.ctx, &discovery.ListCollectionsOptions{
		EnvironmentID: c.EnvironmentID,
		Name:          c.Name,
	})
	if err != nil {
		return err
	}
	return g.print(cols)
}

type DiscoveryQueryCmd struct {
	EnvironmentID string `arg:"" name:"environment-id"`
	CollectionID  string `arg:"" name:"collection-id"`

	NaturalLanguageQuery string   `help:"Natural language query." short:"n" name:"nlq"`
	Query                string   `help:"Query in the Discovery query language." short:"q"`
	Filter               string   `help:"Filter applied before scoring." short:"f"`
	Aggregation          string   `help:"Aggregation expression."`
	Count                int64    `help:"Number of results." default:"10" short:"c"`
	Return               []string `help:"Fields to return." sep:","`
	Passages             bool     `help:"Return passages."`
}

func (c *DiscoveryQueryCmd) Run(g *Globals) error {
	d, err := g.discovery()
	if err != nil {
		return err
	}
	opts := &discovery.QueryOptions{
		EnvironmentID: c.EnvironmentID,
		CollectionID:  c.CollectionID,
		QueryParams: discovery.QueryParams{
			NaturalLanguageQuery: c.NaturalLanguageQuery,
			Query:                c.Query,
			Filter:               c.Filter,
			Aggregation:          c.Aggregation,
			Count:                watson.Int64(c.Count),
			Return:               watson.CSV(c.Return),
		},
	}
	if c.Passages {
		opts.Passages = watson.Bool(true)
	}
	res, _, err := d.Query(g.ctx, opts)
	if err != nil {
		return err
	}
	return g.print(res)
}
