// Copyright 2025 walteh LLC
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

package testutils

// 📄 Route handler fixtures shaped like the handlers in a Next.js app/api tree.

// SingleFieldRoute takes { id } synchronously and has a session.role guard.
const SingleFieldRoute = `import { NextRequest, NextResponse } from 'next/server'
import { prisma } from '@/lib/prisma'
import { requireAuth } from '@/lib/auth'

// GET /api/luaran/:id
export async function GET(
  request: NextRequest,
  { params }: { params: { id: string } }
) {
  try {
    const session = await requireAuth()
    if (session.role !== 'ADMIN') {
      if (!(await canManage(session.id))) {
        return forbidden()
      }
    }

    const luaran = await prisma.luaran.findUnique({
      where: { id: params.id },
    })

    return NextResponse.json({ success: true, data: luaran })
  } catch (error) {
    return serverError(error)
  }
}
`

// SingleFieldRouteFixed is SingleFieldRoute after the rewrite.
const SingleFieldRouteFixed = `import { NextRequest, NextResponse } from 'next/server'
import { prisma } from '@/lib/prisma'
import { requireAuth } from '@/lib/auth'

// GET /api/luaran/:id
export async function GET(
  request: NextRequest,
  { params }: { params: Promise<{ id: string }> }
) {
  try {
    const session = await requireAuth()
    if (session.role !== 'ADMIN') {
      if (!(await canManage(session.id))) {
        return forbidden()
      }
    }

    const { id } = await params

    const luaran = await prisma.luaran.findUnique({
      where: { id: id },
    })

    return NextResponse.json({ success: true, data: luaran })
  } catch (error) {
    return serverError(error)
  }
}
`

// TwoFieldRoute takes { id, memberId } synchronously.
const TwoFieldRoute = `import { NextRequest, NextResponse } from 'next/server'
import { prisma } from '@/lib/prisma'
import { requireAuth } from '@/lib/auth'

// DELETE /api/proposal/:id/members/:memberId
export async function DELETE(
  request: NextRequest,
  { params }: { params: { id: string; memberId: string } }
) {
  try {
    const session = await requireAuth()
    if (!session) {
      return unauthorized()
    }

    await prisma.proposalMember.delete({
      where: { id: params.memberId, proposalId: params.id },
    })

    return NextResponse.json({ success: true })
  } catch (error) {
    return serverError(error)
  }
}
`

// TwoFieldRouteFixed is TwoFieldRoute after the rewrite.
const TwoFieldRouteFixed = `import { NextRequest, NextResponse } from 'next/server'
import { prisma } from '@/lib/prisma'
import { requireAuth } from '@/lib/auth'

// DELETE /api/proposal/:id/members/:memberId
export async function DELETE(
  request: NextRequest,
  { params }: { params: Promise<{ id: string; memberId: string }> }
) {
  try {
    const session = await requireAuth()
    if (!session) {
      return unauthorized()
    }

    await prisma.proposalMember.delete({
      where: { id: (await params).memberId, proposalId: (await params).id },
    })

    return NextResponse.json({ success: true })
  } catch (error) {
    return serverError(error)
  }
}
`

// CorrectRoute already uses the async params signature.
const CorrectRoute = `import { NextRequest, NextResponse } from 'next/server'
import { prisma } from '@/lib/prisma'

// GET /api/skema/:id
export async function GET(
  request: NextRequest,
  { params }: { params: Promise<{ id: string }> }
) {
  const { id } = await params

  const skema = await prisma.skema.findUnique({ where: { id } })
  return NextResponse.json({ success: true, data: skema })
}
`

// NoAnchorRoute has no session.role guard to hang the destructuring on.
const NoAnchorRoute = `import { NextRequest, NextResponse } from 'next/server'
import { prisma } from '@/lib/prisma'

// GET /api/periode/:id
export async function GET(
  request: NextRequest,
  { params }: { params: { id: string } }
) {
  const periode = await prisma.periode.findUnique({ where: { id: params.id } })
  return NextResponse.json({ success: true, data: periode })
}
`

// MultiHandlerRoute has two handlers but only one session.role guard.
const MultiHandlerRoute = `import { NextRequest, NextResponse } from 'next/server'
import { prisma } from '@/lib/prisma'
import { requireAuth } from '@/lib/auth'

export async function GET(
  request: NextRequest,
  { params }: { params: { id: string } }
) {
  const session = await requireAuth()
  if (session.role !== 'ADMIN') {
    if (!(await canView(session.id))) {
      return forbidden()
    }
  }

  return NextResponse.json(await prisma.seminar.findUnique({ where: { id: params.id } }))
}

export async function PUT(
  request: NextRequest,
  { params }: { params: { id: string } }
) {
  const body = await request.json()
  return NextResponse.json(await prisma.seminar.update({ where: { id: params.id }, data: body }))
}
`
