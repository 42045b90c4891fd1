/*
 * Copyright 2022 CECTC, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package meta

import (
	"context"
	"strings"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	"github.com/cectc/dbcli/pkg/constant"
	err2 "github.com/cectc/dbcli/pkg/errors"
	"github.com/cectc/dbcli/pkg/log"
	"github.com/cectc/dbcli/pkg/native"
)

var ExpireTime = 15 * time.Minute

// maxNestingDepth bounds member type resolution of self referencing types.
const maxNestingDepth = 16

// TypeDescriber is the part of a native connection object types are loaded from.
type TypeDescriber interface {
	native.Diagnoser
	DescribeType(ctx context.Context, name string) (*native.ObjectType, constant.Return)
}

// ObjectTypeCache keeps described structured types of one connection,
// nested member types resolved.
type ObjectTypeCache struct {
	objectTypeCache *cache.Cache
}

func NewObjectTypeCache() *ObjectTypeCache {
	return &ObjectTypeCache{
		objectTypeCache: cache.New(ExpireTime, 10*ExpireTime),
	}
}

func (c *ObjectTypeCache) GetObjectType(ctx context.Context, conn TypeDescriber, name string) (*native.ObjectType, error) {
	return c.getObjectType(ctx, conn, name, 0)
}

func (c *ObjectTypeCache) getObjectType(ctx context.Context, conn TypeDescriber, name string, depth int) (*native.ObjectType, error) {
	if strings.TrimSpace(name) == "" {
		return nil, err2.NewSQLError(constant.CRUnknownObjectType, constant.SSInvalidArgument,
			"object type cannot be described without a name")
	}
	cacheKey := c.GetCacheKey(name)
	typ, found := c.objectTypeCache.Get(cacheKey)
	if found {
		return typ.(*native.ObjectType), nil
	}
	objectType, err := c.fetchObjectType(ctx, conn, name, depth)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	c.objectTypeCache.Set(cacheKey, objectType, ExpireTime)
	return objectType, nil
}

// FetchObjectType describes name and every composite member type it refers to.
func (c *ObjectTypeCache) FetchObjectType(ctx context.Context, conn TypeDescriber, name string) (*native.ObjectType, error) {
	return c.fetchObjectType(ctx, conn, name, 0)
}

func (c *ObjectTypeCache) fetchObjectType(ctx context.Context, conn TypeDescriber, name string, depth int) (*native.ObjectType, error) {
	if depth > maxNestingDepth {
		return nil, err2.NewSQLError(constant.CRUnknownObjectType, constant.SSInvalidArgument,
			"object type %s nests deeper than %d levels", name, maxNestingDepth)
	}
	typ, ret := conn.DescribeType(ctx, name)
	if err := native.Check(conn, ret, "describe type "+name); err != nil {
		return nil, err
	}
	if typ == nil {
		return nil, err2.NewSQLError(constant.CRUnknownObjectType, constant.SSInvalidArgument,
			"object type %s does not exist", name)
	}
	members := typ.Members
	if typ.Element != nil {
		members = append(members[:len(members):len(members)], typ.Element)
	}
	for _, m := range members {
		if !m.IsComposite() || m.Type != nil {
			continue
		}
		nested, err := c.getObjectType(ctx, conn, m.TypeName, depth+1)
		if err != nil {
			return nil, errors.Wrapf(err, "could not resolve member %s of %s", m.Name, typ.FullName())
		}
		m.Type = nested
	}
	return typ, nil
}

// Refresh describes every cached type again and replaces the changed ones.
func (c *ObjectTypeCache) Refresh(ctx context.Context, conn TypeDescriber) error {
	for k, v := range c.objectTypeCache.Items() {
		typ := v.Object.(*native.ObjectType)
		key := c.GetCacheKey(typ.FullName())
		if k == key {
			fresh, err := c.FetchObjectType(ctx, conn, typ.FullName())
			if err != nil {
				return errors.WithStack(err)
			}
			if !cmp.Equal(fresh, typ) {
				c.objectTypeCache.Set(key, fresh, ExpireTime)
				log.Infof("object type %s changed, object type cache updated.", key)
			}
		}
	}
	return nil
}

// Invalidate drops name from the cache.
func (c *ObjectTypeCache) Invalidate(name string) {
	c.objectTypeCache.Delete(c.GetCacheKey(name))
}

func (c *ObjectTypeCache) Len() int {
	return c.objectTypeCache.ItemCount()
}

// GetCacheKey normalizes schema qualified and quoted names.
func (c *ObjectTypeCache) GetCacheKey(name string) string {
	name = strings.NewReplacer("`", "", "\"", "").Replace(strings.TrimSpace(name))
	return strings.ToUpper(name)
}
