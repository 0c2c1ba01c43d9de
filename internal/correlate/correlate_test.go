package correlate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/code-atlas/internal/source"
)

// Test Plan for correlate:
//
// 1. .NET files with broker usings produce csharp signals with sorted,
//    deduplicated keyword matches.
// 2. Node files match on import and require statements, and external
//    dependency records count as signal sources too.
// 3. Angular attribution fires on @angular/ imports or a /src/app/
//    path segment, for script and markup files.
// 4. The Mermaid graph only draws the stacks that produced signals and
//    routes ANGULAR through NODE when both exist.
// 5. No signals means an empty correlation and no diagram.

func file(relPath, language, content string) source.File {
	return source.File{Path: "/repo/" + relPath, RelPath: relPath, Language: language, Content: content}
}

func TestCSharpMessagingSignals(t *testing.T) {
	t.Parallel()

	files := []source.File{
		file("Workers/OrderWorker.cs", source.LangCSharp, "using MassTransit;\nusing MassTransit.RabbitMq;\nclass OrderWorker { }"),
		file("Models/Order.cs", source.LangCSharp, "using System;\nclass Order { }"),
	}

	c := Build(files, nil)
	require.Len(t, c.CSharpMessaging, 1)
	assert.Equal(t, "Workers/OrderWorker.cs", c.CSharpMessaging[0].File)
	assert.Equal(t, []string{"masstransit", "masstransit.rabbitmq", "rabbitmq"}, c.CSharpMessaging[0].Matches)
}

func TestNodeMessagingFromImportsAndExternals(t *testing.T) {
	t.Parallel()

	files := []source.File{
		file("worker/consume.js", source.LangJavaScript, "const amqp = require('amqplib');"),
		file("worker/publish.ts", source.LangTypeScript, "import { connect } from 'net';"),
	}
	externals := map[string][]string{
		"worker/publish.ts": {"rascal"},
	}

	c := Build(files, externals)
	require.Len(t, c.NodeMessaging, 2)
	assert.Equal(t, []string{"amqplib"}, c.NodeMessaging[0].Matches)
	assert.Equal(t, "worker/publish.ts", c.NodeMessaging[1].File)
	assert.Equal(t, []string{"rascal"}, c.NodeMessaging[1].Matches)
}

func TestAngularAttribution(t *testing.T) {
	t.Parallel()

	files := []source.File{
		file("ui/orders.component.ts", source.LangTypeScript, "import { Component } from '@angular/core';"),
		file("ui/src/app/orders.component.html", source.LangMarkup, "<div></div>"),
		file("scripts/build.js", source.LangJavaScript, "const fs = require('fs');"),
	}

	c := Build(files, nil)
	require.Len(t, c.AngularFiles, 2)
	assert.Equal(t, "ui/orders.component.ts", c.AngularFiles[0].File)
	assert.Equal(t, "ui/src/app/orders.component.html", c.AngularFiles[1].File)
}

func TestMermaidRoutesAngularThroughNode(t *testing.T) {
	t.Parallel()

	files := []source.File{
		file("Workers/OrderWorker.cs", source.LangCSharp, "using MassTransit;"),
		file("worker/consume.js", source.LangJavaScript, "const amqp = require('amqplib');"),
		file("ui/src/app/app.component.ts", source.LangTypeScript, "import { Component } from '@angular/core';"),
	}

	diagram := Build(files, nil).Mermaid()
	assert.Contains(t, diagram, `DOTNET[".NET Services (1)"]`)
	assert.Contains(t, diagram, `NODE["Node.js Services (1)"]`)
	assert.Contains(t, diagram, `ANGULAR["Angular UI (1)"]`)
	assert.Contains(t, diagram, "DOTNET --> MQ")
	assert.Contains(t, diagram, "NODE --> MQ")
	assert.Contains(t, diagram, "ANGULAR --> NODE")
	assert.NotContains(t, diagram, "ANGULAR --> MQ")
}

func TestMermaidAngularOnly(t *testing.T) {
	t.Parallel()

	files := []source.File{
		file("ui/src/app/app.component.ts", source.LangTypeScript, "import { Component } from '@angular/core';"),
	}

	diagram := Build(files, nil).Mermaid()
	assert.Contains(t, diagram, "ANGULAR --> MQ")
	assert.NotContains(t, diagram, "DOTNET")
	assert.NotContains(t, diagram, "NODE -->")
}

func TestEmptyCorrelation(t *testing.T) {
	t.Parallel()

	files := []source.File{
		file("Models/Order.cs", source.LangCSharp, "using System;"),
	}

	c := Build(files, nil)
	assert.True(t, c.Empty())
	assert.Empty(t, c.Mermaid())
}
