// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package recipe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/google/uuid"

	rdxerrors "github.com/NVIDIA/recipedex/pkg/errors"
	"github.com/NVIDIA/recipedex/pkg/ingredient"
)

// Option configures a Builder.
type Option func(*Builder)

// WithDiagnostics sets the sink receiving reports of skipped records.
// Defaults to NewSlogDiagnostics(slog.Default()).
func WithDiagnostics(d Diagnostics) Option {
	return func(b *Builder) {
		if d != nil {
			b.diag = d
		}
	}
}

// WithRoleContext sets the identity context ingredients of role are resolved
// under. Every role defaults to ingredient.ContextRecipe.
func WithRoleContext(role ingredient.Role, ctx ingredient.Context) Option {
	return func(b *Builder) {
		b.roleContext[role] = ctx
	}
}

// WithVersion sets the version reported by the built index.
func WithVersion(version string) Option {
	return func(b *Builder) {
		b.version = version
	}
}

type pendingRecipe struct {
	typ     TypeID
	record  any
	untyped bool
}

type pendingCatalyst struct {
	typ    TypeID
	values []ingredient.Value
}

// Builder collects categories, recipes and catalysts and builds an immutable
// Manager from them. A Builder is not safe for concurrent use.
type Builder struct {
	resolver    ingredient.Resolver
	diag        Diagnostics
	roleContext map[ingredient.Role]ingredient.Context
	version     string

	categories []Descriptor
	recipes    []pendingRecipe
	handlers   handlerList
	catalysts  []pendingCatalyst
}

// NewBuilder creates a Builder resolving ingredient identities with resolver.
func NewBuilder(resolver ingredient.Resolver, opts ...Option) *Builder {
	b := &Builder{
		resolver:    resolver,
		diag:        NewSlogDiagnostics(slog.Default()),
		roleContext: make(map[ingredient.Role]ingredient.Context),
	}
	for _, role := range ingredient.Roles() {
		b.roleContext[role] = ingredient.ContextRecipe
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddCategories registers categories. Registration order is category priority.
func (b *Builder) AddCategories(categories ...Descriptor) *Builder {
	b.categories = append(b.categories, categories...)
	return b
}

// AddRecipe registers records of typ.
func AddRecipe[T any](b *Builder, typ Type[T], records ...T) *Builder {
	for _, r := range records {
		b.recipes = append(b.recipes, pendingRecipe{typ: typ.ID(), record: r})
	}
	return b
}

// AddRecipeRecord registers a record under typ without compile-time type checks.
// Records that are not of the category's record type are skipped at build.
func (b *Builder) AddRecipeRecord(typ TypeID, record any) *Builder {
	b.recipes = append(b.recipes, pendingRecipe{typ: typ, record: record})
	return b
}

// AddHandler appends a handler for untyped records.
func (b *Builder) AddHandler(handlers ...Handler) *Builder {
	b.handlers = append(b.handlers, handlers...)
	return b
}

// AddUntypedRecipe registers records whose category is chosen by the first
// matching handler at build time.
func (b *Builder) AddUntypedRecipe(records ...any) *Builder {
	for _, r := range records {
		b.recipes = append(b.recipes, pendingRecipe{record: r, untyped: true})
	}
	return b
}

// AddCatalyst declares values as catalysts of typ. Declaration order is
// display priority.
func (b *Builder) AddCatalyst(typ TypeID, values ...ingredient.Value) *Builder {
	b.catalysts = append(b.catalysts, pendingCatalyst{typ: typ, values: values})
	return b
}

// Build indexes everything registered so far and returns the Manager.
// Configuration errors fail the build; records that cannot be ingested are
// reported to the Diagnostics sink and skipped.
func (b *Builder) Build(ctx context.Context) (*Manager, error) {
	start := time.Now()
	m, err := b.build(ctx)
	indexBuildDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		indexBuildsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	indexBuildsTotal.WithLabelValues("success").Inc()

	slog.Debug("recipe index built",
		"build_id", m.id,
		"categories", len(m.registry.order),
		"recipes", m.report.Indexed(),
		"skipped", m.report.Skipped(),
		"duration", time.Since(start))

	return m, nil
}

func (b *Builder) build(ctx context.Context) (*Manager, error) {
	if b.resolver == nil {
		return nil, rdxerrors.New(rdxerrors.ErrCodeInvalidConfiguration, "ingredient resolver is nil")
	}

	reg, err := b.registerCategories()
	if err != nil {
		return nil, err
	}
	if err := b.checkReferences(reg); err != nil {
		return nil, err
	}

	m := &Manager{
		id:          uuid.NewString(),
		version:     b.version,
		builtAt:     time.Now().UTC(),
		resolver:    b.resolver,
		roleContext: make(map[ingredient.Role]ingredient.Context, len(b.roleContext)),
		registry:    reg,
		maps:        make(map[ingredient.Role]*recipeMap),
		catalysts:   newCatalystTable(),
	}
	for role, c := range b.roleContext {
		m.roleContext[role] = c
	}
	for _, role := range ingredient.Roles() {
		m.maps[role] = newRecipeMap(role)
	}

	in := &ingest{
		b:        b,
		m:        m,
		reported: make(map[string]struct{}),
		stats:    make(map[TypeID]*CategoryStats, len(reg.order)),
	}
	for _, d := range reg.order {
		in.stats[d.TypeID()] = &CategoryStats{Type: d.TypeID(), Title: d.Title()}
	}

	grouped := in.route()
	for _, d := range reg.order {
		typ := d.TypeID()
		for _, p := range grouped[typ] {
			if err := ctx.Err(); err != nil {
				return nil, rdxerrors.WrapWithContext(rdxerrors.ErrCodeTimeout,
					"recipe index build canceled", err, map[string]any{"category": string(typ)})
			}
			in.record(d, p.record, p.pos)
		}
		in.catalysts(typ)
	}

	m.report = Report{
		BuildID:   m.id,
		Version:   m.version,
		BuiltAt:   m.builtAt,
		Unhandled: in.unhandled,
	}
	for _, d := range reg.order {
		st := in.stats[d.TypeID()]
		st.Catalysts = len(m.catalysts.catalystsFor(d.TypeID()))
		m.report.Categories = append(m.report.Categories, *st)
	}
	return m, nil
}

// registerCategories validates the category list and builds the registry.
// The same descriptor registered twice is collapsed.
func (b *Builder) registerCategories() (*registry, error) {
	reg := newRegistry()
	var errs []error
	for _, d := range b.categories {
		if d == nil {
			errs = append(errs, fmt.Errorf("category descriptor is nil"))
			continue
		}
		id := d.TypeID()
		if id == "" {
			errs = append(errs, fmt.Errorf("category %q has an empty type id", d.Title()))
			continue
		}
		if existing, ok := reg.category(id); ok {
			if sameDescriptor(existing, d) {
				continue
			}
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateType, id))
			continue
		}
		reg.addCategory(d)
	}
	if len(errs) > 0 {
		return nil, rdxerrors.Wrap(rdxerrors.ErrCodeInvalidConfiguration,
			"invalid recipe categories", errors.Join(errs...))
	}
	return reg, nil
}

// checkReferences fails if a typed recipe or catalyst names an unregistered type.
func (b *Builder) checkReferences(reg *registry) error {
	var errs []error
	missing := make(map[TypeID]struct{})
	note := func(typ TypeID, what string) {
		if _, ok := reg.category(typ); ok {
			return
		}
		if _, done := missing[typ]; done {
			return
		}
		missing[typ] = struct{}{}
		errs = append(errs, fmt.Errorf("%w: %s referenced by %s", ErrUnknownType, typ, what))
	}
	for _, p := range b.recipes {
		if !p.untyped {
			note(p.typ, "recipe")
		}
	}
	for _, c := range b.catalysts {
		note(c.typ, "catalyst")
	}
	if len(errs) > 0 {
		return rdxerrors.Wrap(rdxerrors.ErrCodeInvalidConfiguration,
			"recipes reference unregistered types", errors.Join(errs...))
	}
	return nil
}

func sameDescriptor(a, b Descriptor) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// ingest holds the per-build state of record ingestion.
type ingest struct {
	b         *Builder
	m         *Manager
	reported  map[string]struct{}
	stats     map[TypeID]*CategoryStats
	unhandled int
}

type positioned struct {
	record any
	pos    int
}

// route resolves untyped records through the handler list and groups all
// records by type, preserving registration order within each type.
func (in *ingest) route() map[TypeID][]positioned {
	grouped := make(map[TypeID][]positioned)
	for pos, p := range in.b.recipes {
		typ := p.typ
		if p.untyped {
			h, ok := in.b.handlers.lookup(p.record, func(h Handler, v any) {
				in.report("handler", h.Category, fmt.Errorf("handler %q panicked", h.Name),
					"panic", fmt.Sprint(v), "record_type", fmt.Sprintf("%T", p.record))
			})
			if !ok {
				in.unhandled++
				indexRecordsTotal.WithLabelValues(outcomeUnhandled).Inc()
				kind := fmt.Sprintf("%T", p.record)
				in.b.diag.DebugOnce(kind, "no recipe handler for record type")
				continue
			}
			if _, registered := in.m.registry.category(h.Category); !registered {
				in.unhandled++
				indexRecordsTotal.WithLabelValues(outcomeUnhandled).Inc()
				in.report("handler", h.Category,
					fmt.Errorf("%w: %s selected by handler %q", ErrUnknownType, h.Category, h.Name))
				continue
			}
			typ = h.Category
		}
		grouped[typ] = append(grouped[typ], positioned{record: p.record, pos: pos})
	}
	return grouped
}

// report sends an ingestion failure to the sink once per distinct cause.
func (in *ingest) report(stage string, typ TypeID, cause error, attrs ...any) {
	key := stage + "|" + string(typ) + "|" + cause.Error()
	if _, seen := in.reported[key]; seen {
		return
	}
	in.reported[key] = struct{}{}
	err := rdxerrors.WrapWithContext(rdxerrors.ErrCodeInvalidRecipe, "recipe skipped", cause,
		map[string]any{"stage": stage, "category": string(typ)})
	in.b.diag.Error("failed to ingest recipe", err,
		append([]any{"stage", stage, "category", string(typ)}, attrs...)...)
}

type resolvedSlot struct {
	role ingredient.Role
	uid  ingredient.UID
}

// record validates, extracts, resolves and indexes a single record.
// Any failure skips the whole record.
func (in *ingest) record(d Descriptor, record any, pos int) {
	typ := d.TypeID()
	st := in.stats[typ]
	recordType := fmt.Sprintf("%T", record)

	if !d.Owns(record) {
		st.Failed++
		indexRecordsTotal.WithLabelValues(outcomeFailed).Inc()
		in.report("type", typ, fmt.Errorf("%w: got %s", ErrRecordType, recordType))
		return
	}

	valid, err := safeIsValid(d, record)
	if err != nil {
		st.Failed++
		indexRecordsTotal.WithLabelValues(outcomeFailed).Inc()
		in.report("validate", typ, err, "record_type", recordType)
		return
	}
	if !valid {
		st.Invalid++
		indexRecordsTotal.WithLabelValues(outcomeInvalid).Inc()
		in.b.diag.DebugOnce("invalid|"+string(typ)+"|"+recordType,
			"skipping invalid recipe", "category", string(typ), "record_type", recordType)
		return
	}

	slots, err := safeExtract(d, record)
	if err != nil {
		st.Failed++
		indexRecordsTotal.WithLabelValues(outcomeFailed).Inc()
		in.report("extract", typ, err, "record_type", recordType)
		return
	}

	resolved := make([]resolvedSlot, 0, len(slots))
	for _, s := range slots {
		uid, err := in.resolve(s)
		if err != nil {
			st.Failed++
			indexRecordsTotal.WithLabelValues(outcomeFailed).Inc()
			in.report("resolve", typ, err, "record_type", recordType)
			return
		}
		resolved = append(resolved, resolvedSlot{role: s.Role, uid: uid})
	}

	e := entry{key: identityKey(record, pos), record: record}
	if !in.m.registry.addRecord(typ, e) {
		return
	}
	for _, s := range resolved {
		in.m.maps[s.role].add(s.uid, typ, e)
	}
	st.Indexed++
	indexRecordsTotal.WithLabelValues(outcomeIndexed).Inc()
}

func (in *ingest) resolve(s Slot) (ingredient.UID, error) {
	if !s.Role.IsValid() {
		return ingredient.UID{}, fmt.Errorf("unsupported ingredient role %d", int(s.Role))
	}
	if s.Value == nil {
		return ingredient.UID{}, ingredient.ErrNilValue
	}
	return safeIdentity(in.b.resolver, s.Value, in.m.roleContext[s.Role])
}

// catalysts indexes the catalysts declared for typ.
func (in *ingest) catalysts(typ TypeID) {
	contexts := in.m.contexts()
	primary := in.m.roleContext[ingredient.RoleCatalyst]
	for _, pc := range in.b.catalysts {
		if pc.typ != typ {
			continue
		}
		for _, v := range pc.values {
			c, err := in.catalyst(v, primary, contexts)
			if err != nil {
				in.report("catalyst", typ, err)
				continue
			}
			if in.m.catalysts.add(typ, c) {
				in.m.maps[ingredient.RoleCatalyst].addType(c.uid, typ)
			}
		}
	}
}

func (in *ingest) catalyst(v ingredient.Value, primary ingredient.Context, contexts []ingredient.Context) (catalyst, error) {
	if v == nil {
		return catalyst{}, ingredient.ErrNilValue
	}
	c := catalyst{value: v}
	for _, ctx := range contexts {
		uid, err := safeIdentity(in.b.resolver, v, ctx)
		if err != nil {
			return catalyst{}, err
		}
		if ctx == primary {
			c.uid = uid
		}
		c.ids = append(c.ids, uid)
	}
	return c, nil
}

// safeIdentity resolves v, turning a panicking ingredient helper into an error.
func safeIdentity(r ingredient.Resolver, v ingredient.Value, ctx ingredient.Context) (uid ingredient.UID, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("identity of %T panicked: %v", v, p)
		}
	}()
	return r.Identity(v, ctx)
}

func safeIsValid(d Descriptor, record any) (valid bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("validation panicked: %v", r)
		}
	}()
	return d.IsValid(record), nil
}

func safeExtract(d Descriptor, record any) (slots []Slot, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extraction panicked: %v", r)
		}
	}()
	return d.Extract(record)
}
