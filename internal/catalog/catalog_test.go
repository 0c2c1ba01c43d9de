package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/code-atlas/internal/source"
)

// Test Plan for catalog:
//
// 1. Controller parsing: attribute-annotated classes yield controllers,
//    endpoints with normalized verbs, and joined routes with the
//    [controller] token resolved.
// 2. Flow inference: a save plus a publish inside one endpoint body
//    produce ordered steps, and a consumer of the published message
//    appends queue and DB hops.
// 3. Sequence diagrams: broker and database exchanges appear when, and
//    only when, the flow steps indicate them.
// 4. Flow graph: controller-to-dependency edges come from the
//    dependency lookup, filtered to service-like classes.
// 5. Non-csharp files never contribute to the catalog.

const ordersController = `
[ApiController]
[Route("api/[controller]")]
public class OrdersController : ControllerBase {
    [HttpPost]
    public async Task<IActionResult> Create(OrderDto dto) {
        var order = new Order(dto);
        _db.Orders.Add(order);
        await _db.SaveChangesAsync();
        await _bus.Publish(new OrderCreated(order.Id));
        return Ok(order);
    }

    [HttpGet("{id}")]
    public IActionResult Get(Guid id) {
        return Ok(_db.Orders.Find(id));
    }
}
`

const orderCreatedConsumer = `
public class OrderCreatedConsumer : IConsumer<OrderCreated> {
    private readonly OrdersDbContext _db;

    public async Task Consume(ConsumeContext<OrderCreated> context) {
        _db.Audit.Add(new AuditEntry(context.Message));
        await _db.SaveChangesAsync();
    }
}
`

func csharpFile(relPath, content string) source.File {
	return source.File{
		Path:     "/repo/" + relPath,
		RelPath:  relPath,
		Language: source.LangCSharp,
		Content:  content,
	}
}

type stubDeps map[string][]string

func (s stubDeps) Dependencies(relPath string) []string { return s[relPath] }

func TestParseControllerFile(t *testing.T) {
	t.Parallel()

	parsed := parseControllerFile(ordersController)

	require.Len(t, parsed.controllers, 1)
	assert.Equal(t, "OrdersController", parsed.controllers[0].Name)
	assert.Equal(t, "api/orders", parsed.controllers[0].Route)

	require.Len(t, parsed.endpoints, 2)
	assert.Equal(t, "Create", parsed.endpoints[0].Method)
	assert.Equal(t, []string{"POST"}, parsed.endpoints[0].HTTPVerbs)
	assert.Equal(t, "api/orders", parsed.endpoints[0].Route)
	assert.Equal(t, "Get", parsed.endpoints[1].Method)
	assert.Equal(t, []string{"GET"}, parsed.endpoints[1].HTTPVerbs)
	assert.Equal(t, "api/orders/{id}", parsed.endpoints[1].Route)

	assert.Contains(t, parsed.endpointBodies["OrdersController.Create"], "SaveChangesAsync")
}

func TestBuildFlowWithConsumerHops(t *testing.T) {
	t.Parallel()

	files := []source.File{
		csharpFile("Controllers/OrdersController.cs", ordersController),
		csharpFile("Consumers/OrderCreatedConsumer.cs", orderCreatedConsumer),
	}

	cat := Build(files, nil)
	require.NotNil(t, cat)

	var create EndpointFlow
	for _, flow := range cat.EndpointFlows {
		if flow.Method == "Create" {
			create = flow
		}
	}
	require.Equal(t, "OrdersController", create.Controller)
	assert.Equal(t, []string{"OrderCreated"}, create.Messages)
	assert.Equal(t, []string{
		"Insert/Update DB",
		"Publish/Send OrderCreated to queue",
		"Consumer OrderCreatedConsumer reads queue",
		"Consumer OrderCreatedConsumer reads DB",
	}, create.Steps)
}

func TestSequenceDiagramExchanges(t *testing.T) {
	t.Parallel()

	files := []source.File{
		csharpFile("Controllers/OrdersController.cs", ordersController),
		csharpFile("Consumers/OrderCreatedConsumer.cs", orderCreatedConsumer),
	}

	cat := Build(files, nil)

	var create SequenceDiagram
	for _, diag := range cat.SequenceDiagrams {
		if diag.Method == "Create" {
			create = diag
		}
	}
	require.NotEmpty(t, create.Mermaid)
	assert.Contains(t, create.Mermaid, "sequenceDiagram")
	assert.Contains(t, create.Mermaid, "Client->>OrdersController: POST api/orders")
	assert.Contains(t, create.Mermaid, "OrdersController->>Database: Read/Write data")
	assert.Contains(t, create.Mermaid, "OrdersController->>MessageBroker: Publish OrderCreated")
	assert.Contains(t, create.Mermaid, "MessageBroker->>OrderCreatedConsumer: Deliver OrderCreated")
	assert.Contains(t, create.Mermaid, "OrderCreatedConsumer->>Database: Read/Write data")
	assert.Contains(t, create.Mermaid, "OrdersController-->>Client: Response")

	// The read-only Get endpoint touches the database but no broker.
	var get SequenceDiagram
	for _, diag := range cat.SequenceDiagrams {
		if diag.Method == "Get" {
			get = diag
		}
	}
	require.NotEmpty(t, get.Mermaid)
	assert.NotContains(t, get.Mermaid, "MessageBroker")
}

func TestFlowGraphFromDependencyLookup(t *testing.T) {
	t.Parallel()

	files := []source.File{
		csharpFile("Controllers/OrdersController.cs", ordersController),
		csharpFile("Services/OrderService.cs", `public class OrderService { }`),
		csharpFile("Models/Order.cs", `public class Order { }`),
	}
	deps := stubDeps{
		"Controllers/OrdersController.cs": {"Services/OrderService.cs", "Models/Order.cs"},
	}

	cat := Build(files, deps)

	require.NotEmpty(t, cat.FlowGraph)
	assert.Contains(t, cat.FlowGraph, "graph LR")
	assert.Contains(t, cat.FlowGraph, `OrdersController["OrdersController"] --> OrderService["OrderService"]`)
	// Plain model classes do not qualify as flow dependencies.
	assert.NotContains(t, cat.FlowGraph, "Order.cs")
	assert.Equal(t, []string{"OrderService"}, cat.ControllerDependencies["OrdersController"])

	// API spec rows carry the controller plus its dependencies.
	require.NotEmpty(t, cat.APISpec)
	assert.Equal(t, []string{"OrdersController", "OrderService"}, cat.APISpec[0].Components)
}

func TestFlowGraphEmptyWithoutEdges(t *testing.T) {
	t.Parallel()

	files := []source.File{csharpFile("Controllers/OrdersController.cs", ordersController)}
	cat := Build(files, nil)
	assert.Empty(t, cat.FlowGraph)
}

func TestNonCSharpFilesIgnored(t *testing.T) {
	t.Parallel()

	files := []source.File{
		{
			Path:     "/repo/app/main.js",
			RelPath:  "app/main.js",
			Language: source.LangJavaScript,
			Content:  `class OrdersController { create() {} }`,
		},
	}

	cat := Build(files, nil)
	assert.Empty(t, cat.Controllers)
	assert.Empty(t, cat.Endpoints)
	assert.Empty(t, cat.Services)
}

func TestServicesAndInterfacesDeduplicated(t *testing.T) {
	t.Parallel()

	files := []source.File{
		csharpFile("a.cs", `public class OrderService { } public class IOrderStore { }`),
		csharpFile("b.cs", `public class OrderService { } public class AuditRepository { }`),
	}

	cat := Build(files, nil)
	assert.Equal(t, []string{"AuditRepository", "OrderService"}, cat.Services)
	assert.Equal(t, []string{"IOrderStore"}, cat.Interfaces)
}

func TestInferStepsVarTypedPublish(t *testing.T) {
	t.Parallel()

	body := `
        var evt = new ShipmentDispatched(id);
        _db.Shipments.Update(shipment);
        await _publisher.Publish(evt);
    `
	steps, messages := inferSteps(body)
	assert.Equal(t, []string{"ShipmentDispatched"}, messages)
	assert.Equal(t, []string{
		"Insert/Update DB",
		"Publish/Send ShipmentDispatched to queue",
	}, steps)
}
